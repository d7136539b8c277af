package cli

import (
	"fmt"
	"io"

	"github.com/amterp/cards/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors that work in both light and dark terminals.
// First value is for dark terminals, second for light terminals.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"} // green
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"} // red
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"} // amber
	ColorInfo    = lipgloss.AdaptiveColor{Dark: "#3b82f6", Light: "#2563eb"} // blue
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"} // gray
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"} // purple for IDs
)

// Reusable text styles
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleID      = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleBold    = lipgloss.NewStyle().Bold(true)
)

// stateStyles colors the state column of the card table.
var stateStyles = map[model.State]lipgloss.Style{
	model.StateTodo:   StyleMuted,
	model.StateInProg: StyleInfo,
	model.StateDone:   StyleSuccess,
}

// Icons for status messages
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"
)

// PrintSuccess prints a success message with a green checkmark.
func PrintSuccess(w io.Writer, format string, args ...any) {
	icon := StyleSuccess.Render(IconSuccess)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

// PrintError prints an error message with a red X.
func PrintError(w io.Writer, format string, args ...any) {
	icon := StyleError.Render(IconError)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

// PrintWarning prints a warning message with an amber icon.
func PrintWarning(w io.Writer, format string, args ...any) {
	icon := StyleWarning.Render(IconWarning)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

// PrintInfo prints an info message with a muted arrow.
func PrintInfo(w io.Writer, format string, args ...any) {
	icon := StyleMuted.Render(IconInfo)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

// RenderID renders a card ID in accent color.
func RenderID(id int) string {
	return StyleID.Render(fmt.Sprintf("%d", id))
}

// RenderMuted renders text in muted color.
func RenderMuted(text string) string {
	return StyleMuted.Render(text)
}

// RenderBold renders text in bold.
func RenderBold(text string) string {
	return StyleBold.Render(text)
}

// RenderState renders a state in its workflow color.
func RenderState(s model.State) string {
	style, ok := stateStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}
