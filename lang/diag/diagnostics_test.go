package diag

import (
	"bytes"
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func buildStream() *token.TokenStream {
	ts := token.NewTokenStream()
	lines := []string{
		"fn f() -> i32 {\n",
		"  return 1.0f;\n",
		"}\n",
	}
	for i, l := range lines {
		ts.AddToken(token.FILE_METADATA, l, token.SourceRef{Line: i + 1, Column: 0, Length: len(l)})
	}
	return ts
}

func TestDiagnosticsAddEnrichesContext(t *testing.T) {
	ts := buildStream()
	d := New(ts)
	require.False(t, d.HasErrors())

	err := NewError("return value of type f32 but function is declared to return i32").
		AddMessage(token.SourceRef{Line: 2, Column: 9, Length: 6}, "returned here").
		AddMessage(token.SourceRef{Line: 1, Column: 13, Length: 3}, "declared here")
	d.Add(err)

	require.True(t, d.HasErrors())
	require.Equal(t, 1, d.Size())
	got := d.Get(0)
	require.Len(t, got.Messages, 2)
	// ±2 lines around line 2 clipped to [1,3] by the stream's line range.
	require.Equal(t, []token.LineText{
		{Line: 1, Text: "fn f() -> i32 {\n"},
		{Line: 2, Text: "  return 1.0f;\n"},
		{Line: 3, Text: "}\n"},
	}, got.Messages[0].Context)
}

func TestAddSimpleAndOrder(t *testing.T) {
	ts := buildStream()
	d := New(ts)
	d.AddSimple(token.SourceRef{Line: 1}, "first", "a")
	d.AddSimple(token.SourceRef{Line: 2}, "second", "b")
	require.Equal(t, "first", d.Get(0).Headline)
	require.Equal(t, "second", d.Get(1).Headline)
}

func TestAddInternal(t *testing.T) {
	ts := buildStream()
	d := New(ts)
	d.AddInternal(token.SourceRef{Line: 1}, "empty basic block")
	require.Equal(t, "compiler bug, please report this", d.Get(0).Headline)
	require.Equal(t, "empty basic block", d.Get(0).Messages[0].Prose)
}

func TestPrinterFormat(t *testing.T) {
	ts := buildStream()
	d := New(ts)
	d.Add(NewError("return value of type f32 but function is declared to return i32").
		AddMessage(token.SourceRef{Line: 2, Column: 2, Length: 6}, "returned here"))

	var buf bytes.Buffer
	p := NewPrinter(&buf, token.NewFileTable(), PrinterConfig{})
	p.Print(d)

	out := buf.String()
	require.Contains(t, out, "Error: return value of type f32")
	require.Contains(t, out, "   2:   return 1.0f;")
	require.Contains(t, out, "^")
	require.Contains(t, out, "returned here")
}
