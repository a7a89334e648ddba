package engine_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wpstyle/engine"
	"wpstyle/style"
)

type countingGenerator struct {
	next  engine.Generator
	calls atomic.Int32
}

func (g *countingGenerator) Generate(v style.Value) *engine.Result {
	g.calls.Add(1)
	return g.next.Generate(v)
}

func TestMemo_Transparent(t *testing.T) {
	e := newEngine(t)
	m := engine.NewMemo(e, 16, zaptest.NewLogger(t))

	inputs := []style.Value{
		style.MustParseJSON(`{"color": {"text": "var:preset|color|texas-flood"}, "spacing": {"margin": "111px"}}`),
		style.MustParseJSON(`{"spacing": {"padding": {"top": "42px", "left": "2%"}}}`),
		style.MustParseJSON(`{"pageBreakAfter": "verso"}`),
		style.Str("hello world!"),
	}
	for range 2 {
		for _, v := range inputs {
			assert.Equal(t, e.Generate(v), m.Generate(v))
		}
	}
}

func TestMemo_Hits(t *testing.T) {
	g := &countingGenerator{next: newEngine(t)}
	m := engine.NewMemo(g, 4, zaptest.NewLogger(t))

	a := style.MustParseJSON(`{"spacing": {"padding": {"top": "1px", "left": "2px"}}}`)
	sameAsA := style.MustParseJSON(`{"spacing": {"padding": {"top": "1px", "left": "2px"}}}`)
	reordered := style.MustParseJSON(`{"spacing": {"padding": {"left": "2px", "top": "1px"}}}`)

	first := m.Generate(a)
	second := m.Generate(sameAsA)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, g.calls.Load())

	third := m.Generate(reordered)
	assert.EqualValues(t, 2, g.calls.Load())
	assert.Equal(t, "padding-left: 2px; padding-top: 1px;", third.CSS)
	assert.Equal(t, 2, m.Len())
	m.LogStats()
}

func TestMemo_ReturnsCopies(t *testing.T) {
	m := engine.NewMemo(newEngine(t), 4, nil)
	v := style.MustParseJSON(`{"color": {"text": "#fff"}}`)

	res := m.Generate(v)
	require.NotNil(t, res)
	res.CSS = "changed"

	again := m.Generate(v)
	assert.Equal(t, "color: #fff;", again.CSS)
	again.Classnames = "changed"
	assert.Equal(t, "has-text-color", m.Generate(v).Classnames)
}

func TestMemo_Eviction(t *testing.T) {
	g := &countingGenerator{next: newEngine(t)}
	m := engine.NewMemo(g, 2, zaptest.NewLogger(t))

	a := style.MustParseJSON(`{"color": {"text": "#a"}}`)
	b := style.MustParseJSON(`{"color": {"text": "#b"}}`)
	c := style.MustParseJSON(`{"color": {"text": "#c"}}`)

	m.Generate(a)
	m.Generate(b)
	m.Generate(c) // evicts a
	assert.Equal(t, 2, m.Len())
	assert.EqualValues(t, 3, g.calls.Load())

	m.Generate(c)
	m.Generate(b)
	assert.EqualValues(t, 3, g.calls.Load())

	m.Generate(a)
	assert.EqualValues(t, 4, g.calls.Load())
	assert.Equal(t, 2, m.Len())
}

func TestMemo_Disabled(t *testing.T) {
	g := &countingGenerator{next: newEngine(t)}
	m := engine.NewMemo(g, 0, zaptest.NewLogger(t))

	v := style.MustParseJSON(`{"color": {"text": "#fff"}}`)
	m.Generate(v)
	m.Generate(v)
	assert.EqualValues(t, 2, g.calls.Load())
	assert.Equal(t, 0, m.Len())
}

func TestMemo_NilResult(t *testing.T) {
	g := &countingGenerator{next: newEngine(t)}
	m := engine.NewMemo(g, 2, zaptest.NewLogger(t))

	assert.Nil(t, m.Generate(style.Obj()))
	assert.Nil(t, m.Generate(style.Obj()))
	assert.EqualValues(t, 1, g.calls.Load())
}

func TestMemo_Concurrent(t *testing.T) {
	e := newEngine(t)
	m := engine.NewMemo(e, 3, zaptest.NewLogger(t))

	inputs := []style.Value{
		style.MustParseJSON(`{"color": {"text": "#a"}}`),
		style.MustParseJSON(`{"color": {"text": "#b"}}`),
		style.MustParseJSON(`{"color": {"text": "#c"}}`),
		style.MustParseJSON(`{"color": {"text": "#d"}}`),
	}
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				v := inputs[(i+j)%len(inputs)]
				if got, want := m.Generate(v), e.Generate(v); *got != *want {
					t.Errorf("Generate() = %+v, want %+v", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, m.Len(), 3)
}
