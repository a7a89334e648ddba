package generate

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"wpstyle/config"
	"wpstyle/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs bool, transliterate bool) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Output.FileNameTransliterate = transliterate

	return &state.LocalEnv{
		Log:    logger,
		Cfg:    cfg,
		NoDirs: noDirs,
	}
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		noDirs        bool
		transliterate bool
		format        config.OutputFmt
		want          string
	}{
		{"keep dirs", "themes/dark/blocks.json", false, false, config.OutputFmtText, filepath.Join("/output", "themes", "dark", "blocks.txt")},
		{"no dirs", "themes/dark/blocks.json", true, false, config.OutputFmtYaml, filepath.Join("/output", "blocks.yaml")},
		{"yaml to json", "group.yml", false, false, config.OutputFmtJson, filepath.Join("/output", "group.json")},
		{"transliterate", "Стили блоков.json", true, true, config.OutputFmtText, filepath.Join("/output", "stili-blokov.txt")},
		{"no transliteration", "Стили блоков.json", true, false, config.OutputFmtText, filepath.Join("/output", "Стили блоков.txt")},
		{"leading dots", "..hidden.json", true, false, config.OutputFmtText, filepath.Join("/output", "hidden.txt")},
		{"only extension", ".json", true, false, config.OutputFmtText, filepath.Join("/output", "_bad_file_name_.txt")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.noDirs, tt.transliterate)
			if got := buildOutputPath(tt.src, "/output", tt.format, env); got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
