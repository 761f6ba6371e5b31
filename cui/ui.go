// Package cui defines character user interfaces for I/O.
package cui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
)

// UI provides formatted output for the application.
type UI interface {
	// Output writes out the passed argument s to Writer with a line break.
	Output(s string)
	// Info is the same as Output, but distinguish these for composition.
	Info(s string)
	// Error writes out the passed argument s to ErrWriter with a line break.
	Error(s string)

	Writer() io.Writer
	ErrWriter() io.Writer
}

type basicUI struct {
	writer, errWriter io.Writer
}

// New creates a new UI with passed options.
// The default writers are os.Stdout and os.Stderr.
func New(opts ...Option) UI {
	ui := &basicUI{
		writer:    colorable.NewColorableStdout(),
		errWriter: colorable.NewColorableStderr(),
	}
	for _, opt := range opts {
		opt(ui)
	}
	return ui
}

func (u *basicUI) Output(s string) {
	fmt.Fprintln(u.writer, s)
}

func (u *basicUI) Info(s string) {
	u.Output(s)
}

func (u *basicUI) Error(s string) {
	fmt.Fprintln(u.errWriter, s)
}

func (u *basicUI) Writer() io.Writer {
	return u.writer
}

func (u *basicUI) ErrWriter() io.Writer {
	return u.errWriter
}

type coloredUI struct {
	UI
}

// NewColored wraps the provided ui with coloredUI.
// If ui is already a colored UI, NewColored returns it as it is.
func NewColored(ui UI) UI {
	if ui, ok := ui.(*coloredUI); ok {
		return ui
	}
	return &coloredUI{ui}
}

func (u *coloredUI) Info(s string) {
	u.UI.Info(color.BlueString(s))
}

func (u *coloredUI) Error(s string) {
	u.UI.Error(color.RedString(s))
}
