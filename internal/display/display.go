// Package display shows rendered chart files to the user.
package display

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

// Viewer shows a rendered chart file. Show may block until the viewer returns.
type Viewer interface {
	Show(path string) error
}

// BrowserViewer opens files with the system's default handler (web browser for HTML, image viewer for PNG).
type BrowserViewer struct{}

func (BrowserViewer) Show(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// NoopViewer is used when running headless; it only logs the path.
type NoopViewer struct{}

func (NoopViewer) Show(path string) error {
	log.Debug().Str("component", "display").Str("path", path).Msg("display disabled, not opening chart")
	return nil
}

// New returns a BrowserViewer when enabled, otherwise a NoopViewer.
func New(enabled bool) Viewer {
	if enabled {
		return BrowserViewer{}
	}
	return NoopViewer{}
}
