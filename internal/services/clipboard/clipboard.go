// Package clipboard places rendered snapshot text on the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies rendered snapshot text to the system clipboard.
type Copier interface {
	Copy(renderedText string) error
}

// systemClipboard is the Copier backed by github.com/atotto/clipboard.
type systemClipboard struct{}

// NewService returns the system clipboard copier. Copy failures are
// expected on headless hosts and are reported, not fatal.
func NewService() Copier {
	return systemClipboard{}
}

// Copy writes renderedText to the system clipboard.
func (systemClipboard) Copy(renderedText string) error {
	return clipboard.WriteAll(renderedText)
}
