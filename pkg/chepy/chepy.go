// Package chepy provides a fluent data transformation API.
// Most methods transform the current state and return the same *Chepy so calls can be
// chained; a few accessors break the chain and return a plain Go value instead.
package chepy

import (
	"embed"
	"fmt"
	"os"
)

// Sources holds the Go sources that declare the Chepy methods. The shell parses them to
// discover method names, parameter names and doc comments at runtime.
//
//go:embed chepy.go encoding.go text.go hashing.go accessors.go
var Sources embed.FS

// TypeName is the name the fluent type reports in method docs.
const TypeName = "Chepy"

// Chepy holds the state being transformed together with every previous state.
type Chepy struct {
	state   []byte
	history [][]byte
}

// New creates a Chepy object from literal data, or from the contents of the file named
// by data when isFile is true.
func New(data string, isFile bool) (*Chepy, error) {
	if !isFile {
		return &Chepy{state: []byte(data)}, nil
	}

	content, err := os.ReadFile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", data, err)
	}
	return &Chepy{state: content}, nil
}

// State returns the current state.
//
//chepy:property
func (c *Chepy) State() []byte {
	return c.state
}

// PreviousState returns the state before the last transformation, or nil when the
// object has not been transformed yet.
//
//chepy:property
func (c *Chepy) PreviousState() []byte {
	if len(c.history) == 0 {
		return nil
	}
	return c.history[len(c.history)-1]
}

// String renders the current state as text.
//
//chepy:property
func (c *Chepy) String() string {
	return string(c.state)
}

// set records the current state in the history and replaces it.
func (c *Chepy) set(next []byte) *Chepy {
	c.history = append(c.history, c.state)
	c.state = next
	return c
}
