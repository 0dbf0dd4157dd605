package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCommandBuffer(t *testing.T) {
	assert.Equal(t, `--data "abc" --is_file=false`, NewCommandBuffer("abc", false).String())
	assert.Equal(t, `--data "/tmp/x" --is_file=true`, NewCommandBuffer("/tmp/x", true).String())
	assert.Equal(t, `--data "say \"hi\" \$HOME" --is_file=false`, NewCommandBuffer(`say "hi" $HOME`, false).String())
}

func TestCommandBuffer_Append(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "method", lines: []string{"to_hex"}, want: `--data "a" --is_file=false to_hex`},
		{name: "accumulates", lines: []string{"to_hex", "reverse --count 2"}, want: `--data "a" --is_file=false to_hex reverse --count 2`},
		{name: "meta line removed", lines: []string{"to_hex", "cli_show_state"}, want: `--data "a" --is_file=false to_hex`},
		{name: "meta arguments removed", lines: []string{"to_hex", `cli_highlight "6"`}, want: `--data "a" --is_file=false to_hex`},
		{name: "inline meta token removed", lines: []string{"to_hex cli_show_state reverse"}, want: `--data "a" --is_file=false to_hex reverse`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCommandBuffer("a", false)
			for _, line := range tt.lines {
				b.Append(line)
			}
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestCommandBuffer_Restore(t *testing.T) {
	b := NewCommandBuffer("a", false)
	snapshot := b.Snapshot()
	b.Append("to_hex")
	b.Restore(snapshot)
	assert.Equal(t, `--data "a" --is_file=false`, b.String())
}
