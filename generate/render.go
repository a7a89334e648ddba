package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	yaml "gopkg.in/yaml.v3"

	"wpstyle/config"
	"wpstyle/engine"
	"wpstyle/style"
	"wpstyle/utils/debug"
)

// Item is result of compiling a single style object. Its fields are
// available to text output template.
type Item struct {
	// Source is document path relative to processed source.
	Source string
	// Name identifies style object: Source for single object documents,
	// Source with index otherwise.
	Name  string
	Index int
	Count int
	// Null is set when nothing could be compiled (not a mapping or empty).
	Null       bool
	CSS        string
	Classnames string
	// Explained is filled only when explanation was requested.
	Explained []Explained
}

// Explained is a declaration produced by the schema before sanitization
// along with sanitizer verdict.
type Explained struct {
	Property string `json:"property" yaml:"property"`
	Value    string `json:"value" yaml:"value"`
	Output   string `json:"output,omitempty" yaml:"output,omitempty"`
	Reason   string `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// record is serialized form of Item for json and yaml outputs.
type record struct {
	Name         string         `json:"name" yaml:"name"`
	Result       *engine.Result `json:"result" yaml:"result"`
	Declarations []Explained    `json:"declarations,omitempty" yaml:"declarations,omitempty"`
}

func parseTemplate(name config.TemplateFieldName, field string) (*template.Template, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	return tmpl, nil
}

func (j *job) compile(v style.Value, src string, index, count int) Item {
	it := Item{Source: src, Name: src, Index: index, Count: count}
	if count > 1 {
		it.Name = fmt.Sprintf("%s[%d]", src, index)
	}

	res := j.env.Engine.Generate(v)
	if res == nil {
		it.Null = true
	} else {
		it.CSS, it.Classnames = res.CSS, res.Classnames
	}

	if j.env.Explain {
		for _, d := range engine.Declarations(v) {
			e := Explained{Property: d.Property, Value: d.Value}
			if out, err := j.env.Sanitizer.Check(d.String()); err != nil {
				e.Reason = err.Error()
			} else {
				e.Output = out
			}
			it.Explained = append(it.Explained, e)
		}
	}
	return it
}

func (it *Item) record() record {
	r := record{Name: it.Name, Declarations: it.Explained}
	if !it.Null {
		r.Result = &engine.Result{CSS: it.CSS, Classnames: it.Classnames}
	}
	return r
}

func (j *job) render(items []Item) ([]byte, error) {
	switch j.format {
	case config.OutputFmtText:
		return renderText(j.tmpl, items)
	case config.OutputFmtJson:
		return renderJSON(items)
	case config.OutputFmtYaml:
		return renderYAML(items)
	}
	// this should never happen
	panic("unsupported format requested")
}

func renderText(tmpl *template.Template, items []Item) ([]byte, error) {
	buf := new(bytes.Buffer)
	for i := range items {
		if err := tmpl.Execute(buf, &items[i]); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		if items[i].Explained != nil {
			buf.WriteString(explainTree(items[i].Explained))
		}
	}
	return buf.Bytes(), nil
}

func explainTree(decls []Explained) string {
	tw := debug.NewTreeWriter()
	for _, d := range decls {
		if len(d.Reason) > 0 {
			tw.TextBlock(1, "rejected", d.Property+": "+d.Value)
			tw.KeyValue(2, "reason", d.Reason)
			continue
		}
		tw.TextBlock(1, "accepted", d.Output)
	}
	return tw.String()
}

func renderJSON(items []Item) ([]byte, error) {
	records := make([]record, 0, len(items))
	for i := range items {
		records = append(records, items[i].record())
	}

	// sanitized css is already html escaped
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderYAML(items []Item) ([]byte, error) {
	records := make([]record, 0, len(items))
	for i := range items {
		records = append(records, items[i].record())
	}

	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
