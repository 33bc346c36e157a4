package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBanner returns the branded header for the panel.
func RenderBanner(styles *StyleSet, version string, width int) string {
	if version == "" {
		version = "dev"
	}

	title := styles.Banner.Render("📖  AI Comic Book Creator") + "  " + styles.VersionPill.Render("v"+version)
	subtitle := styles.Subtitle.Render("Turn a topic into a comic strip, one crew step at a time.")

	dividerWidth := width - 4
	if dividerWidth < 20 {
		dividerWidth = 20
	}
	if dividerWidth > 60 {
		dividerWidth = 60
	}
	divider := lipgloss.NewStyle().
		Foreground(styles.Theme.Border).
		Render(strings.Repeat("─", dividerWidth))

	return fmt.Sprintf("  %s\n  %s\n  %s\n", title, subtitle, divider)
}
