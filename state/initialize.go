package state

import (
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"wpstyle/css"
	"wpstyle/engine"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Stdout: os.Stdout,
	}
}

// PrepareEngine builds the declaration sanitizer and style engine from
// loaded configuration. When cache is enabled engine is wrapped in Memo.
func (e *LocalEnv) PrepareEngine() error {
	if e.Cfg == nil {
		return errors.New("configuration is not loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	sc := e.Cfg.Sanitizer
	opts := []css.SanitizerOption{
		css.WithExtraProperties(sc.ExtraProperties...),
		css.WithExtraFunctions(sc.ExtraFunctions...),
	}
	if len(sc.URLProtocols) > 0 {
		opts = append(opts, css.WithURLProtocols(sc.URLProtocols...))
	}
	e.Sanitizer = css.NewSanitizer(log, opts...)

	var gen engine.Generator = engine.New(engine.WithSanitizer(e.Sanitizer), engine.WithLogger(log))
	if size := e.Cfg.Engine.CacheSize; size > 0 {
		gen = engine.NewMemo(gen, size, log)
	}
	e.Engine = gen

	log.Debug("Style engine prepared",
		zap.Strings("extra properties", sc.ExtraProperties),
		zap.Strings("extra functions", sc.ExtraFunctions),
		zap.Strings("url protocols", sc.URLProtocols),
		zap.Int("cache size", e.Cfg.Engine.CacheSize))
	return nil
}
