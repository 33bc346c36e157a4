package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TermTheme holds all color values for a TUI theme.
type TermTheme struct {
	Name string

	// Brand
	Accent    lipgloss.Color
	AccentDim lipgloss.Color

	// Semantic
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Text
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color

	// Surfaces
	Surface      lipgloss.Color
	Border       lipgloss.Color
	ActiveBorder lipgloss.Color
	ActiveBg     lipgloss.Color
}

// DarkTheme is the default dark terminal theme.
var DarkTheme = TermTheme{
	Name:         "dark",
	Accent:       lipgloss.Color("#c084fc"),
	AccentDim:    lipgloss.Color("#9333ea"),
	Success:      lipgloss.Color("#22c55e"),
	Warning:      lipgloss.Color("#eab308"),
	Error:        lipgloss.Color("#ef4444"),
	Primary:      lipgloss.Color("#f3f4f6"),
	Secondary:    lipgloss.Color("#9ca3af"),
	Dim:          lipgloss.Color("#6b7280"),
	Surface:      lipgloss.Color("#1f2937"),
	Border:       lipgloss.Color("#374151"),
	ActiveBorder: lipgloss.Color("#a855f7"),
	ActiveBg:     lipgloss.Color("#2e1065"),
}

// LightTheme is the light terminal theme.
var LightTheme = TermTheme{
	Name:         "light",
	Accent:       lipgloss.Color("#7e22ce"),
	AccentDim:    lipgloss.Color("#581c87"),
	Success:      lipgloss.Color("#15803d"),
	Warning:      lipgloss.Color("#a16207"),
	Error:        lipgloss.Color("#b91c1c"),
	Primary:      lipgloss.Color("#111827"),
	Secondary:    lipgloss.Color("#374151"),
	Dim:          lipgloss.Color("#4b5563"),
	Surface:      lipgloss.Color("#ffffff"),
	Border:       lipgloss.Color("#d1d5db"),
	ActiveBorder: lipgloss.Color("#7e22ce"),
	ActiveBg:     lipgloss.Color("#faf5ff"),
}

// DetectTheme returns the appropriate theme based on flag, env, or detection.
func DetectTheme(flagVal string) TermTheme {
	// 1. --theme flag or config
	switch strings.ToLower(flagVal) {
	case "dark":
		return DarkTheme
	case "light":
		return LightTheme
	}

	// 2. COMICGEN_THEME env
	if env := os.Getenv("COMICGEN_THEME"); env != "" {
		switch strings.ToLower(env) {
		case "dark":
			return DarkTheme
		case "light":
			return LightTheme
		}
	}

	// 3. COLORFGBG heuristic (format: "fg;bg")
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			bg := parts[len(parts)-1]
			if bg == "15" || bg == "7" {
				return LightTheme
			}
		}
	}

	return DarkTheme
}

// StyleSet contains pre-computed lipgloss styles derived from a theme.
type StyleSet struct {
	Theme TermTheme

	// Text styles
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	AccentTxt    lipgloss.Style
	DimTxt       lipgloss.Style
	SuccessTxt   lipgloss.Style
	WarningTxt   lipgloss.Style
	ErrorTxt     lipgloss.Style
	PrimaryTxt   lipgloss.Style
	SecondaryTxt lipgloss.Style

	// Border styles
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	// Kbd hint
	KbdKey  lipgloss.Style
	KbdDesc lipgloss.Style

	// Banner
	Banner lipgloss.Style

	// Summary
	SummaryKey   lipgloss.Style
	SummaryValue lipgloss.Style

	// Bordered box
	BorderedBox lipgloss.Style

	// Status log entries
	EntryStatus  lipgloss.Style
	EntryDetails lipgloss.Style

	// Badges
	BadgeDone   lipgloss.Style
	BadgeActive lipgloss.Style
	BadgeFailed lipgloss.Style
	BadgeIdle   lipgloss.Style
	VersionPill lipgloss.Style
}

// NewStyleSet creates a StyleSet from a theme.
func NewStyleSet(theme TermTheme) *StyleSet {
	badge := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Padding(0, 1)

	return &StyleSet{
		Theme: theme,

		Title:        lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Subtitle:     lipgloss.NewStyle().Foreground(theme.Secondary),
		AccentTxt:    lipgloss.NewStyle().Foreground(theme.Accent),
		DimTxt:       lipgloss.NewStyle().Foreground(theme.Dim),
		SuccessTxt:   lipgloss.NewStyle().Foreground(theme.Success),
		WarningTxt:   lipgloss.NewStyle().Foreground(theme.Warning),
		ErrorTxt:     lipgloss.NewStyle().Foreground(theme.Error),
		PrimaryTxt:   lipgloss.NewStyle().Foreground(theme.Primary),
		SecondaryTxt: lipgloss.NewStyle().Foreground(theme.Secondary),

		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ActiveBorder),
		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		KbdKey: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Dim).
			Padding(0, 1),
		KbdDesc: lipgloss.NewStyle().
			Foreground(theme.Dim),

		Banner: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		SummaryKey: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Width(12),
		SummaryValue: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		EntryStatus: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
		EntryDetails: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		BadgeDone:   badge.Background(theme.Success),
		BadgeActive: badge.Background(theme.Accent),
		BadgeFailed: badge.Background(theme.Error),
		BadgeIdle: lipgloss.NewStyle().
			Background(theme.Border).
			Foreground(theme.Secondary).
			Padding(0, 1),
		VersionPill: lipgloss.NewStyle().
			Background(theme.AccentDim).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}
