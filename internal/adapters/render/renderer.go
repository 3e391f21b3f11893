// Package render provides a synchronous, line-oriented progress renderer.
// Builds are short-lived and often run in CI, so output is linear and
// chronological rather than an interactive display.
package render

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vgfx/forge/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer by printing one line per completed task.
type Renderer struct {
	out    io.Writer
	styles styles

	mu     sync.Mutex
	starts map[string]time.Time // spanID -> start time
}

type styles struct {
	built    lipgloss.Style
	upToDate lipgloss.Style
	failed   lipgloss.Style
	duration lipgloss.Style
}

// NewRenderer creates a Renderer writing to the given writer; nil defaults
// to stderr. Color is enabled based on the environment (NO_COLOR honored).
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stderr
	}
	return &Renderer{
		out:    out,
		styles: newStyles(colorEnabled()),
		starts: make(map[string]time.Time),
	}
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

func newStyles(color bool) styles {
	if !color {
		return styles{}
	}
	return styles{
		built:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		upToDate: lipgloss.NewStyle().Faint(true),
		failed:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		duration: lipgloss.NewStyle().Faint(true),
	}
}

// OnTaskStart records the task's start time.
func (r *Renderer) OnTaskStart(spanID, _ string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts[spanID] = startTime
}

// OnTaskComplete prints the task's terminal status line.
func (r *Renderer) OnTaskComplete(spanID, name string, status ports.TaskStatus, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var elapsed time.Duration
	if start, ok := r.starts[spanID]; ok {
		elapsed = endTime.Sub(start).Round(time.Millisecond)
		delete(r.starts, spanID)
	}

	switch status {
	case ports.StatusUpToDate:
		_, _ = fmt.Fprintf(r.out, "%s %s\n",
			r.styles.upToDate.Render("-"),
			r.styles.upToDate.Render(name+" (up to date)"))
	case ports.StatusFailed:
		line := fmt.Sprintf("%s %s", r.styles.failed.Render("x"), name)
		if err != nil {
			line += ": " + err.Error()
		}
		_, _ = fmt.Fprintln(r.out, line)
	default:
		_, _ = fmt.Fprintf(r.out, "%s %s %s\n",
			r.styles.built.Render("+"),
			name,
			r.styles.duration.Render(elapsed.String()))
	}
}
