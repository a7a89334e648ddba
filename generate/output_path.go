package generate

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"wpstyle/config"
	"wpstyle/state"
)

// buildOutputPath returns result file path for the style document. It takes
// into account whether to preserve source directory structure on the output,
// cleans up file name and if requested transliterates it.
func buildOutputPath(src, dst string, format config.OutputFmt, env *state.LocalEnv) string {
	return filepath.Join(determineOutputDir(src, dst, env), buildFileName(src, format, env))
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildFileName(src string, format config.OutputFmt, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if env.Cfg.Output.FileNameTransliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(baseName) + format.Ext()
}
