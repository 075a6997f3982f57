package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/gensuite/internal/domain"
)

// Theme groups the lipgloss styles for one color scheme preset.
type Theme struct {
	Title  lipgloss.Style
	Prompt lipgloss.Style
	Dim    lipgloss.Style
	Result lipgloss.Style
	Warn   lipgloss.Style
}

// ColorEnabled reports whether stdout is a terminal worth styling.
func ColorEnabled() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewTheme builds the styles for a named scheme. Unknown names fall back
// to classic; with styling disabled every style renders plain text.
func NewTheme(scheme string, enabled bool) Theme {
	if !enabled {
		plain := lipgloss.NewStyle()
		return Theme{Title: plain, Prompt: plain, Dim: plain, Result: plain, Warn: plain}
	}
	switch scheme {
	case domain.SchemeOcean:
		return Theme{
			Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
			Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Result: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("209")),
		}
	case domain.SchemeEmber:
		return Theme{
			Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Result: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		}
	case domain.SchemeMono:
		return Theme{
			Title:  lipgloss.NewStyle().Bold(true),
			Prompt: lipgloss.NewStyle(),
			Dim:    lipgloss.NewStyle().Faint(true),
			Result: lipgloss.NewStyle().Bold(true),
			Warn:   lipgloss.NewStyle().Underline(true),
		}
	default: // classic
		return Theme{
			Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
			Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Result: lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
			Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		}
	}
}
