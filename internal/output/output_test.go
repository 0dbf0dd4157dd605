package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStyleProvider wraps text in [semantic]text[/semantic].
type mockStyleProvider struct {
	available bool
}

func newMockStyleProvider() *mockStyleProvider {
	return &mockStyleProvider{available: true}
}

func (m *mockStyleProvider) Style(semantic SemanticType) TextStyle {
	return TextStyleFunc(func(text string) string {
		return "[" + string(semantic) + "]" + text + "[/" + string(semantic) + "]"
	})
}

func (m *mockStyleProvider) IsAvailable() bool { return m.available }

func (m *mockStyleProvider) MarkdownStyle() string { return "notty" }

func TestPrinterBasicOutput(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), PlainText())

	printer.Print("hello")
	printer.Println("world")

	assert.Equal(t, "helloworld\n", buffer.String())
}

func TestPrinterSemanticOutput(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), PlainText())

	printer.Info("information")
	printer.Success("completed")
	printer.Warning("careful")
	printer.Error("failed")
	printer.Result(42)

	assert.Equal(t, []string{
		"ℹ information",
		"✓ completed",
		"⚠ careful",
		"✗ failed",
		"42",
	}, buffer.Lines())
}

func TestPrinterWithStyleProvider(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithStyles(newMockStyleProvider()))

	printer.Info("test message")
	printer.Error("bad")

	assert.Equal(t, []string{"[info]test message[/info]", "[error]bad[/error]"}, buffer.Lines())
	assert.Equal(t, "[highlight]x[/highlight]", printer.Highlight("x"))
	assert.True(t, printer.IsStylable())
}

func TestPrinterWithUnavailableStyleProvider(t *testing.T) {
	provider := newMockStyleProvider()
	provider.available = false

	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithStyles(provider))
	printer.Info("test message")

	assert.Equal(t, "ℹ test message\n", buffer.String())
	assert.False(t, printer.IsStylable())
}

func TestPrinterPlainModeIgnoresStyles(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithStyles(newMockStyleProvider()), PlainText())

	printer.Success("done")

	assert.Equal(t, "✓ done\n", buffer.String())
	assert.Equal(t, "[x]", printer.Highlight("x"))
}

func TestPrinterJSONMode(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), JSON())

	printer.Info("test message")
	printer.Error("error message")

	lines := buffer.Lines()
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"type":"info","message":"test message"}`, lines[0])
	assert.JSONEq(t, `{"type":"error","message":"error message"}`, lines[1])
}

func TestPrinterMarkdown(t *testing.T) {
	plain := NewCaptureBuffer()
	NewPrinter(WithWriter(plain), PlainText()).Markdown("# Title")
	assert.Equal(t, "# Title\n", plain.String())

	styled := NewCaptureBuffer()
	NewPrinter(WithWriter(styled), WithStyles(newMockStyleProvider())).Markdown("# Title\n\nsome *text*")
	assert.Contains(t, styled.String(), "Title")
	assert.Contains(t, styled.String(), "text")
	assert.NotContains(t, styled.String(), "[markdown]")
}

func TestPrinterMarkdownWordWrap(t *testing.T) {
	words := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"

	narrow := NewCaptureBuffer()
	NewPrinter(WithWriter(narrow), WithStyles(newMockStyleProvider()), WithWordWrap(20)).Markdown(words)

	wide := NewCaptureBuffer()
	NewPrinter(WithWriter(wide), WithStyles(newMockStyleProvider()), WithWordWrap(200)).Markdown(words)

	assert.Greater(t, len(narrow.Lines()), len(wide.Lines()))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "default", input: "", want: "[info]hi[/info]\n"},
		{name: "auto", input: "auto", want: "[info]hi[/info]\n"},
		{name: "plain", input: "Plain", want: "ℹ hi\n"},
		{name: "json", input: "json", want: `{"message":"hi","type":"info"}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := ParseMode(tt.input)
			require.NoError(t, err)

			buffer := NewCaptureBuffer()
			NewPrinter(WithWriter(buffer), WithStyles(newMockStyleProvider()), opt).Info("hi")
			assert.Equal(t, tt.want, buffer.String())
		})
	}

	_, err := ParseMode("xml")
	assert.ErrorContains(t, err, "unknown output mode")
}

func TestCaptureBuffer(t *testing.T) {
	buffer := NewCaptureBuffer()
	assert.Empty(t, buffer.Lines())

	_, err := buffer.Write([]byte("line1\nline2\nline3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"line1", "line2", "line3"}, buffer.Lines())

	buffer.Reset()
	assert.Empty(t, buffer.String())
}

func BenchmarkPrinterPlainOutput(b *testing.B) {
	buffer := &bytes.Buffer{}
	printer := NewPrinter(WithWriter(buffer), PlainText())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		printer.Info("benchmark message")
		buffer.Reset()
	}
}
