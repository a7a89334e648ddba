// Package engine compiles block style attribute objects into inline CSS and
// class names according to a fixed schema of style definitions.
package engine

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"wpstyle/css"
	"wpstyle/style"
)

// Generator produces compilation result for style object. Result is nil for
// empty or non-object input.
type Generator interface {
	Generate(styles style.Value) *Result
}

// Engine is safe for concurrent use.
type Engine struct {
	log       *zap.Logger
	sanitizer css.Filterer
}

type Option func(*Engine)

// WithSanitizer replaces default declaration sanitizer.
func WithSanitizer(f css.Filterer) Option {
	return func(e *Engine) {
		e.sanitizer = f
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates style engine. Unless overwritten with options it does not log
// and uses css.Sanitizer with default policy.
func New(opts ...Option) *Engine {
	e := &Engine{log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("engine")
	if e.sanitizer == nil {
		e.sanitizer = css.NewSanitizer(e.log)
	}
	return e
}

// Generate compiles style object. It never fails, anything it does not
// understand does not contribute to the result.
func (e *Engine) Generate(styles style.Value) *Result {
	if !styles.IsObject() || styles.IsEmpty() {
		e.log.Debug("Nothing to generate", zap.Stringer("kind", styles.Kind()))
		return nil
	}

	decls, classnames := compile(styles)

	var buf strings.Builder
	for _, d := range decls {
		if out := e.sanitizer.Filter(d.String()); len(out) > 0 {
			buf.WriteString(out)
			buf.WriteString("; ")
		}
	}

	res := &Result{CSS: strings.TrimSpace(buf.String())}
	if len(classnames) > 0 {
		res.Classnames = strings.Join(classnames, " ")
	}
	return res
}

// Declarations returns ordered CSS declarations for style object before they
// are passed to sanitizer.
func Declarations(styles style.Value) []Declaration {
	if !styles.IsObject() || styles.IsEmpty() {
		return nil
	}
	decls, _ := compile(styles)
	return decls
}

func compile(styles style.Value) ([]Declaration, []string) {
	var (
		decls      []Declaration
		classnames []string
	)
	for gi := range schema {
		group := &schema[gi]
		if v, ok := styles.Get(group.Name); !ok || v.IsEmpty() {
			continue
		}
		for di := range group.Definitions {
			def := &group.Definitions[di]

			v := styles.At(def.Path...)
			if v.IsEmpty() {
				continue
			}
			for _, cn := range classnamesFor(v, def) {
				if !slices.Contains(classnames, cn) {
					classnames = append(classnames, cn)
				}
			}
			decls = append(decls, rulesFor(v, def)...)
		}
	}
	return decls, classnames
}

func classnamesFor(v style.Value, def *Definition) []string {
	var out []string
	for _, p := range def.Classnames {
		if p.Always {
			out = append(out, p.Template)
			continue
		}
		if slug, ok := SlugFromPreset(v, p.PropertyKey); ok {
			out = append(out, substitute(p.Template, phSlug, slug))
		}
	}
	return out
}

func rulesFor(v style.Value, def *Definition) []Declaration {
	if def.Kind == RuleSideGroup {
		return sideRules(v, def)
	}
	if isPreset(v) {
		return nil
	}
	switch v.Kind() {
	case style.KindObject:
		if def.Kind != RuleBoxModel {
			return nil
		}
		return boxModelRules(v, def)
	case style.KindString:
		s, _ := v.Text()
		return []Declaration{{Property: def.Property, Value: s}}
	}
	return nil
}
