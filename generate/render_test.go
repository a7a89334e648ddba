package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wpstyle/config"
)

func TestParseTemplate(t *testing.T) {
	_, err := parseTemplate(config.TextTemplateFieldName, "{{ .Name ")
	assert.Error(t, err)

	tmpl, err := parseTemplate(config.TextTemplateFieldName, `{{ .Index }}/{{ .Count }} {{ .Source | upper }} {{ .Classnames | splitList " " | len }}`)
	require.NoError(t, err)

	out, err := renderText(tmpl, []Item{{Source: "a.json", Index: 1, Count: 2, Classnames: "has-text-color has-background"}})
	require.NoError(t, err)
	assert.Equal(t, "1/2 A.JSON 2\n", string(out))
}

func TestRenderText_UnknownField(t *testing.T) {
	tmpl, err := parseTemplate(config.TextTemplateFieldName, "{{ .Missing }}")
	require.NoError(t, err)
	_, err = renderText(tmpl, []Item{{Name: "a"}})
	assert.Error(t, err)
}

func TestRenderJSON_Explained(t *testing.T) {
	items := []Item{{
		Name: "a.json",
		CSS:  "color: red;",
		Explained: []Explained{
			{Property: "color", Value: "red", Output: "color: red"},
			{Property: "font-size", Value: "clamp(1px, 2px, 3px)", Reason: "function is not allowed"},
		},
	}}
	out, err := renderJSON(items)
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, `"output": "color: red"`)
	assert.Contains(t, got, `"rejected": "function is not allowed"`)
	assert.True(t, strings.HasSuffix(got, "]\n"))
}

func TestRenderYAML_Null(t *testing.T) {
	out, err := renderYAML([]Item{{Name: "a.json", Null: true}})
	require.NoError(t, err)
	assert.Equal(t, "- name: a.json\n  result: null\n", string(out))
}

func TestExplainTree(t *testing.T) {
	got := explainTree([]Explained{
		{Property: "color", Value: "red", Output: "color: red"},
		{Property: "font-size", Value: "clamp(1px)", Reason: "no"},
	})
	want := `  accepted: "color: red"
  rejected: "font-size: clamp(1px)"
    reason = no
`
	assert.Equal(t, want, got)
}
