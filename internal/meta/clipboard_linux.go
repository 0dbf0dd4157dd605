//go:build linux

package meta

import "fmt"

// The x11 backend of golang.design/x/clipboard needs cgo and a display, so Linux builds
// print the state instead.
const clipboardAvailable = false

func initClipboard() error {
	return fmt.Errorf("clipboard not available on this platform (Linux without X11)")
}

func writeToClipboard(string) error {
	return fmt.Errorf("clipboard not available on this platform (Linux without X11)")
}
