package shell

import (
	"fmt"
	"strings"

	"chepyshell/internal/meta"
)

// CommandBuffer accumulates every accepted line into the command handed to the
// executor.
type CommandBuffer struct {
	value string
}

var dataEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// NewCommandBuffer seeds the buffer with the constructor flags.
func NewCommandBuffer(data string, isFile bool) *CommandBuffer {
	return &CommandBuffer{value: fmt.Sprintf(`--data "%s" --is_file=%t`, dataEscaper.Replace(data), isFile)}
}

// String returns the accumulated command.
func (b *CommandBuffer) String() string {
	return b.value
}

// Append adds an accepted line and removes meta-command tokens. A meta-command line
// is removed together with its arguments.
func (b *CommandBuffer) Append(line string) {
	b.value += " " + line
	if meta.IsMeta(line) {
		b.value = strings.TrimSuffix(b.value, " "+line)
	}
	b.value = meta.StripTokens(b.value)
}

// Snapshot returns the current value for a later Restore.
func (b *CommandBuffer) Snapshot() string {
	return b.value
}

// Restore resets the buffer to a snapshot.
func (b *CommandBuffer) Restore(snapshot string) {
	b.value = snapshot
}
