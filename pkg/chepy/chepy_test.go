package chepy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("literal data", func(t *testing.T) {
		c, err := New("hello", false)
		require.NoError(t, err)
		assert.Equal(t, "hello", c.String())
		assert.Nil(t, c.PreviousState())
	})

	t.Run("file data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.txt")
		require.NoError(t, os.WriteFile(path, []byte("from file"), 0600))

		c, err := New(path, true)
		require.NoError(t, err)
		assert.Equal(t, []byte("from file"), c.State())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "nope"), true)
		assert.Error(t, err)
	})
}

func TestEncodingRoundTrips(t *testing.T) {
	tests := []struct {
		name    string
		forward func(*Chepy) *Chepy
		back    func(*Chepy) (*Chepy, error)
		encoded string
	}{
		{
			name:    "hex",
			forward: func(c *Chepy) *Chepy { return c.ToHex("") },
			back:    func(c *Chepy) (*Chepy, error) { return c.FromHex("") },
			encoded: "4869",
		},
		{
			name:    "hex with delimiter",
			forward: func(c *Chepy) *Chepy { return c.ToHex(":") },
			back:    func(c *Chepy) (*Chepy, error) { return c.FromHex(":") },
			encoded: "48:69",
		},
		{
			name:    "base64",
			forward: func(c *Chepy) *Chepy { return c.ToBase64(false) },
			back:    func(c *Chepy) (*Chepy, error) { return c.FromBase64(false) },
			encoded: "SGk=",
		},
		{
			name:    "binary",
			forward: func(c *Chepy) *Chepy { return c.ToBinary(" ") },
			back:    func(c *Chepy) (*Chepy, error) { return c.FromBinary() },
			encoded: "01001000 01101001",
		},
		{
			name:    "decimal",
			forward: func(c *Chepy) *Chepy { return c.ToDecimal(" ") },
			back:    func(c *Chepy) (*Chepy, error) { return c.FromDecimal(" ") },
			encoded: "72 105",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("Hi", false)
			require.NoError(t, err)

			assert.Equal(t, tt.encoded, tt.forward(c).String())

			decoded, err := tt.back(c)
			require.NoError(t, err)
			assert.Equal(t, "Hi", decoded.String())
		})
	}
}

func TestTextOperations(t *testing.T) {
	c, _ := New("Hello World", false)
	assert.Equal(t, "HELLO WORLD", c.ToUpperCase().String())
	assert.Equal(t, "hello world", c.ToLowerCase().String())
	assert.Equal(t, "dlrow olleh", c.Reverse(1).String())
	assert.Equal(t, "qyebj byyru", c.Rot13().String())

	_, err := c.StrReplace("q(y)", "<$1>", false)
	require.NoError(t, err)
	assert.Equal(t, "<y>ebj byyru", c.String())
	assert.Equal(t, []byte("qyebj byyru"), c.PreviousState())
}

func TestReverseGroups(t *testing.T) {
	c, _ := New("abcdef", false)
	assert.Equal(t, "efcdab", c.Reverse(2).String())
}

func TestRegexSearch(t *testing.T) {
	c, _ := New("a1 b22 C333", false)
	_, err := c.RegexSearch(`[a-c]\d+`, true)
	require.NoError(t, err)
	assert.Equal(t, "a1\nb22\nC333", c.String())

	_, err = c.RegexSearch("(", false)
	assert.Error(t, err)
}

func TestAccessors(t *testing.T) {
	c, _ := New(`{"a": 1, "b": "two"}`, false)
	assert.Equal(t, 20, c.Length())
	assert.Equal(t, 6, c.CountOccurances(`"`, true))
	assert.Equal(t, 1, c.CountOccurances("B", false))
	assert.Equal(t, 0, c.CountOccurances("B", true))

	dict, err := c.JSONToDict()
	require.NoError(t, err)
	assert.Equal(t, "two", dict["b"])

	n, _ := New(" 42 ", false)
	v, err := n.ToInt()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestHashing(t *testing.T) {
	c, _ := New("abc", false)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", c.HashMd5().String())

	c, _ = New("abc", false)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", c.HashSha2().String())
}
