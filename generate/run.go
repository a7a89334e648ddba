// Package generate implements "generate" command: it finds style documents,
// compiles every style object in them and writes results.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"wpstyle/archive"
	"wpstyle/config"
	"wpstyle/engine"
	"wpstyle/state"
	"wpstyle/style"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	// empty destination means STDOUT
	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Output.Format
	if to := cmd.String("to"); len(to) > 0 {
		if format, err = config.ParseOutputFmt(to); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Output.Format))
			format = env.Cfg.Output.Format
		}
	}

	env.NoDirs, env.Overwrite, env.Explain = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.Bool("explain")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	if env.Engine == nil {
		if err := env.PrepareEngine(); err != nil {
			return fmt.Errorf("unable to prepare style engine: %w", err)
		}
	}

	j, err := newJob(env, dst, format, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", j.destination()), zap.Stringer("format", format))
	defer func(start time.Time) {
		if m, ok := env.Engine.(*engine.Memo); ok {
			m.LogStats()
		}
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)),
			zap.Int("documents", j.documents), zap.Int("styles", j.styles), zap.Int("failed", j.failed))
	}(time.Now())

	if err := j.process(ctx, src); err != nil {
		return err
	}
	if j.errs != nil {
		return fmt.Errorf("unable to process %d document(s): %w", j.failed, j.errs)
	}
	return nil
}

// job keeps state of a single generate run.
type job struct {
	env    *state.LocalEnv
	log    *zap.Logger
	dst    string
	format config.OutputFmt
	tmpl   *template.Template

	documents int
	styles    int
	failed    int
	errs      error

	// something was already written to stdout
	written bool
}

func newJob(env *state.LocalEnv, dst string, format config.OutputFmt, log *zap.Logger) (*job, error) {
	j := &job{env: env, log: log, dst: dst, format: format}
	if format == config.OutputFmtText {
		tmpl, err := parseTemplate(config.TextTemplateFieldName, env.Cfg.Output.TextTemplate)
		if err != nil {
			return nil, err
		}
		j.tmpl = tmpl
	}
	return j, nil
}

func (j *job) destination() string {
	if len(j.dst) == 0 {
		return "STDOUT"
	}
	return j.dst
}

// process determines the input type (directory, archive, or single file) and
// processes it accordingly. Archive may be followed by path inside it.
func (j *job) process(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := j.processDir(ctx, head); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := archive.IsArchive(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := j.processArchive(ctx, head, filepath.ToSlash(tail), ""); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if style.IsDocument(head) && len(tail) == 0 {
			// document cannot have tail
			file, err := os.Open(head)
			if err != nil {
				return fmt.Errorf("unable to open style document: %w", err)
			}
			defer file.Close()
			j.processDocument(ctx, file, filepath.Base(head))
			break
		}
		return fmt.Errorf("input was not recognized as style document (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// walkDir calls fn for every regular file under dir. Entries are visited in
// natural order, symbolic links are not followed.
func walkDir(ctx context.Context, dir string, fn func(path string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		switch {
		case a.Name() == b.Name():
			return 0
		case natural.Less(a.Name(), b.Name()):
			return -1
		}
		return 1
	})
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			if err := walkDir(ctx, path, fn); err != nil {
				return err
			}
		case e.Type().IsRegular():
			if err := fn(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// processDir walks directory tree finding style documents and archives and
// processes them.
func (j *job) processDir(ctx context.Context, dir string) error {
	count := j.documents
	defer func() {
		if count == j.documents {
			j.log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return walkDir(ctx, dir, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		isArchive, err := archive.IsArchive(path)
		if err != nil {
			// checking format - but cannot open target file
			j.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := j.processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir))); err != nil {
				if ctx.Err() != nil {
					return err
				}
				j.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		if !style.IsDocument(path) {
			j.log.Debug("Skipping file, not recognized as style document or archive", zap.String("file", path))
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			j.fail(fmt.Errorf("unable to open %s: %w", path, err))
			return nil
		}
		defer file.Close()

		j.processDocument(ctx, file, strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator)))
		return nil
	})
}

// processArchive walks all files inside archive, finds style documents under
// "pathIn" and processes them.
func (j *job) processArchive(ctx context.Context, path, pathIn, pathOut string) error {
	count := j.documents
	defer func() {
		if count == j.documents {
			j.log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return archive.Walk(path, pathIn, j.env.CodePage, func(arc string, e archive.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if e.NameErr != nil {
			n, _ := ianaindex.IANA.Name(j.env.CodePage)
			j.log.Warn("Unable to convert archive name from specified encoding",
				zap.String("charset", n), zap.String("path", e.Name), zap.Error(e.NameErr))
		}
		if !style.IsDocument(e.Name) {
			j.log.Debug("Skipping file, not recognized as style document", zap.String("archive", arc), zap.String("file", e.Name))
			return nil
		}

		r, err := e.File.Open()
		if err != nil {
			j.fail(fmt.Errorf("unable to open %s in archive %s: %w", e.Name, arc, err))
			return nil
		}
		defer r.Close()

		j.processDocument(ctx, r, filepath.Join(pathOut, filepath.FromSlash(e.Name)))
		return nil
	})
}

// processDocument compiles every style object in a single document. "src" is
// path of the document relative to the processed source and is used to name
// results. Document level failures are logged and remembered, processing
// continues.
func (j *job) processDocument(ctx context.Context, r io.Reader, src string) {
	if ctx.Err() != nil {
		return
	}
	j.documents++

	var outputName string

	j.log.Info("Generation starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			j.log.Error("Generation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("from", src), zap.ByteString("stack", debug.Stack()))
			j.fail(fmt.Errorf("generation panic (%s): %v", src, r))
		}
	}(time.Now())

	if err := j.generate(r, src, &outputName); err != nil {
		j.fail(err)
		return
	}
	j.log.Info("Generation completed", zap.String("from", src), zap.String("to", outputName))
}

func (j *job) generate(r io.Reader, src string, outputName *string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("unable to read style document (%s): %w", src, err)
	}
	values, err := style.ParseDocument(src, data)
	if err != nil {
		return fmt.Errorf("unable to parse style document (%s): %w", src, err)
	}

	items := make([]Item, 0, len(values))
	for i, v := range values {
		items = append(items, j.compile(v, src, i, len(values)))
	}
	j.styles += len(items)

	out, err := j.render(items)
	if err != nil {
		return fmt.Errorf("unable to render results (%s): %w", src, err)
	}

	if len(j.dst) == 0 {
		*outputName = "STDOUT"
		if j.format == config.OutputFmtYaml && j.written {
			out = append([]byte("---\n"), out...)
		}
		if _, err := j.env.Stdout.Write(out); err != nil {
			return fmt.Errorf("unable to write results: %w", err)
		}
		j.written = true
		j.env.Rpt.StoreData(fmt.Sprintf("result-%d%s", j.documents, j.format.Ext()), out)
		return nil
	}

	*outputName = buildOutputPath(src, j.dst, j.format, j.env)
	if err := j.prepareOutput(*outputName); err != nil {
		return err
	}
	if err := os.WriteFile(*outputName, out, 0644); err != nil {
		return fmt.Errorf("unable to write results: %w", err)
	}
	j.env.Rpt.Store(fmt.Sprintf("result-%d%s", j.documents, j.format.Ext()), *outputName)
	return nil
}

// prepareOutput checks if output file already exists and creates its
// directory.
func (j *job) prepareOutput(outputName string) error {
	if _, err := os.Stat(outputName); err == nil {
		if !j.env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		j.log.Warn("Overwriting existing file", zap.String("file", outputName))
		return os.Remove(outputName)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

func (j *job) fail(err error) {
	j.failed++
	j.errs = multierr.Append(j.errs, err)
	j.log.Error("Unable to process document", zap.Error(err))
}
