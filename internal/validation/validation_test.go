package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chepyshell/internal/catalog"
)

func testLoader() catalog.Loader {
	return catalog.Static{C: catalog.New(
		catalog.MethodSpec{Name: "foo", ReturnTypeName: "Chepy"},
		catalog.MethodSpec{Name: "to_hex", ReturnTypeName: "Chepy"},
	)}
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr string
	}{
		{name: "empty line", line: ""},
		{name: "single token", line: "bar"},
		{name: "unknown method", line: "foo bar", wantErr: "bar is not a valid Chepy method"},
		{name: "known method", line: "foo to_hex"},
		{name: "flag", line: "foo --flag"},
		{name: "flag value", line: "foo --flag value"},
		{name: "double quoted literal", line: `foo "literal"`},
		{name: "single quoted literal", line: `foo 'literal'`},
		{name: "only last token checked", line: "bar baz foo"},
		{name: "flag then unknown", line: "foo --delimiter : bar", wantErr: "bar is not a valid Chepy method"},
		{name: "method names are case sensitive", line: "foo To_hex", wantErr: "To_hex is not a valid Chepy method"},
	}

	v := NewValidator(testLoader())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.line)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantErr, verr.Error())
			assert.Equal(t, ErrorPosition, verr.Position)
		})
	}
}

func TestError_Caret(t *testing.T) {
	err := &Error{Position: 1, Token: "bar"}
	assert.Equal(t, " ^", err.Caret())
}

func TestPainter_Paint(t *testing.T) {
	render := func(s ...string) string { return "<" + s[0] + ">" }
	p := NewPainter(NewValidator(testLoader()), render)

	assert.Equal(t, "foo <bar>", string(p.Paint([]rune("foo bar"), 7)))
	assert.Equal(t, "foo to_hex", string(p.Paint([]rune("foo to_hex"), 10)))
	assert.Equal(t, "bar <bar>", string(p.Paint([]rune("bar bar"), 7)), "last occurrence is painted")
}
