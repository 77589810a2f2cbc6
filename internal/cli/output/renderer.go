package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/leapstack-labs/rowql/pkg/core"
	"golang.org/x/term"
)

// Renderer writes results to out and messages to errOut. It is safe for
// concurrent use; each call writes its output as one unit.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	format Format
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, format Format) *Renderer {
	return NewRendererWithTTY(out, errOut, IsTerminal(out), format)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, format Format) *Renderer {
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		format: format,
		styles: NewStyles(out, isTTY),
	}
}

// IsTerminal reports whether v, a reader or writer, is a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Format returns the current result format.
func (r *Renderer) Format() Format {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.format
}

// SetFormat changes the result format.
func (r *Renderer) SetFormat(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.format = f
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Result renders a query result in the current format.
func (r *Renderer) Result(result *core.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Render(r.out, r.format, result)
}

// Println writes a line to out.
func (r *Renderer) Println(a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to out.
func (r *Renderer) Printf(format string, a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Error writes "Error: <err>" to errOut.
func (r *Renderer) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("Error: "+err.Error()))
}

// Warn writes a warning line to errOut.
func (r *Renderer) Warn(format string, a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(fmt.Sprintf(format, a...)))
}
