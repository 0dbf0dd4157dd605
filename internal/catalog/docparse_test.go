package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleDocParser_Parse(t *testing.T) {
	raw := `ToHex converts the state
to hexadecimal.

Longer explanation that is not part of the summary.

Args:
  - delimiter (string, optional): separator placed between bytes.
    Defaults to " ".
  - count (int): how many.

Returns:
  - Chepy: the Chepy object.

Examples:
  - nothing: to see here.
`
	doc, err := GoogleDocParser{}.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "ToHex converts the state to hexadecimal.", doc.Summary)
	require.Len(t, doc.Params, 2)

	assert.Equal(t, ParamDoc{
		Name:        "delimiter",
		Type:        "string",
		Description: `separator placed between bytes. Defaults to " ".`,
		Default:     " ",
		HasDefault:  true,
		Optional:    true,
	}, doc.Params[0])
	assert.Equal(t, ParamDoc{Name: "count", Type: "int", Description: "how many."}, doc.Params[1])

	require.NotNil(t, doc.Returns)
	assert.Equal(t, "Chepy", doc.Returns.TypeName)
	assert.Equal(t, "the Chepy object.", doc.Returns.Description)
}

func TestGoogleDocParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "   \n"},
		{name: "malformed parameter", raw: "Summary.\n\nArgs:\n  - this line has no colon\n\nReturns:\n  - int: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GoogleDocParser{}.Parse(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestGoogleDocParser_Variants(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantReturns *ReturnDoc
		wantParams  int
		wantDefault string
	}{
		{
			name:        "no returns section",
			raw:         "Only a summary.",
			wantReturns: nil,
		},
		{
			name:        "returns without type",
			raw:         "Summary.\n\nReturns:\n  the value\n",
			wantReturns: &ReturnDoc{Description: "the value"},
		},
		{
			name:        "parameters without list markers",
			raw:         "Summary.\n\nParameters:\n    base (int): the base. Defaults to 16.\n\nReturn:\n    Chepy: obj\n",
			wantReturns: &ReturnDoc{TypeName: "Chepy", Description: "obj"},
			wantParams:  1,
			wantDefault: "16",
		},
		{
			name:        "single quoted default",
			raw:         "Summary.\n\nArgs:\n  - sep (string): sep. Defaults to ','.\n\nReturns:\n  - Chepy: obj\n",
			wantReturns: &ReturnDoc{TypeName: "Chepy", Description: "obj"},
			wantParams:  1,
			wantDefault: ",",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := GoogleDocParser{}.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReturns, doc.Returns)
			require.Len(t, doc.Params, tt.wantParams)
			if tt.wantParams > 0 {
				assert.Equal(t, tt.wantDefault, doc.Params[0].Default)
			}
		})
	}
}

func TestGoogleDocParser_SummaryIsFirstLine(t *testing.T) {
	raw := "Reverse reverses the state\nin groups of count bytes.\n\nLonger notes.\n\nReturns:\n  - Chepy: obj\n"

	doc, err := GoogleDocParser{}.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Reverse reverses the state", doc.Summary)
}
