package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const maxTableWidth = 100

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// StdoutIsTTY reports whether stdout is an interactive terminal. Styled
// and tabular output falls back to plain text when it is not.
func StdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// terminalWidth returns the usable output width, capped at maxTableWidth.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return maxTableWidth
	}
	if width > maxTableWidth {
		return maxTableWidth
	}
	return width
}

// Table renders rows under a header with aligned columns. Cells wider
// than the terminal allows are truncated with an ellipsis.
type Table struct {
	Headers []string
	Rows    [][]string
	Styled  bool
}

// NewTable creates a table that styles its header when stdout is a TTY.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers, Styled: StdoutIsTTY()}
}

// AddRow appends a row. Missing cells render as blanks.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the formatted table.
func (t *Table) Render() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Shrink the widest column until the row fits.
	for total := sum(widths) + 2*(len(widths)-1); total > terminalWidth(); total = sum(widths) + 2*(len(widths)-1) {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 8 {
			break
		}
		widths[widest]--
	}

	var b strings.Builder
	header := formatRow(t.Headers, widths)
	if t.Styled {
		header = headerStyle.Render(header)
	}
	b.WriteString(header)
	b.WriteByte('\n')

	for _, row := range t.Rows {
		b.WriteString(formatRow(row, widths))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if len(cell) > widths[i] {
			if widths[i] > 1 {
				cell = cell[:widths[i]-1] + "…"
			} else {
				cell = cell[:widths[i]]
			}
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// Muted styles secondary text when stdout is a TTY.
func Muted(s string) string {
	if !StdoutIsTTY() {
		return s
	}
	return mutedStyle.Render(s)
}

// Errorf styles a failure line when stdout is a TTY.
func Errorf(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	if !StdoutIsTTY() {
		return s
	}
	return errorStyle.Render(s)
}

// Warnf styles a warning line when stdout is a TTY.
func Warnf(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	if !StdoutIsTTY() {
		return s
	}
	return warningStyle.Render(s)
}

// Okf styles a success line when stdout is a TTY.
func Okf(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	if !StdoutIsTTY() {
		return s
	}
	return okStyle.Render(s)
}
