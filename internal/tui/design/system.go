package design

import (
	"github.com/charmbracelet/lipgloss"
)

// Spacing units
const (
	SpaceNone = 0
	SpaceXS   = 1
	SpaceSM   = 2
	SpaceMD   = 3
	SpaceLG   = 4

	// Label column of the settings form
	LabelWidth = 24
)

// Color Palette
var (
	ColorPrimary = lipgloss.AdaptiveColor{
		Light: "#2E7D32",
		Dark:  "#43B02A",
	}
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#059669",
		Dark:  "#10B981",
	}
	ColorError = lipgloss.AdaptiveColor{
		Light: "#DC2626",
		Dark:  "#EF4444",
	}
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#F59E0B",
	}
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2563EB",
		Dark:  "#3B82F6",
	}
	ColorBackground = lipgloss.AdaptiveColor{
		Light: "#FFFFFF",
		Dark:  "#0F0F0F",
	}
	ColorSurfaceAlt = lipgloss.AdaptiveColor{
		Light: "#F3F4F6",
		Dark:  "#262626",
	}
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#E5E7EB",
		Dark:  "#404040",
	}
	ColorText = lipgloss.AdaptiveColor{
		Light: "#111827",
		Dark:  "#F9FAFB",
	}
	ColorTextSecondary = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
	ColorTextTertiary = lipgloss.AdaptiveColor{
		Light: "#9CA3AF",
		Dark:  "#6B7280",
	}
	ColorLink = lipgloss.AdaptiveColor{
		Light: "#1D4ED8",
		Dark:  "#60A5FA",
	}
)

// Text styles
var (
	TextStyle          = lipgloss.NewStyle().Foreground(ColorText)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	TextSuccessStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextErrorStyle     = lipgloss.NewStyle().Foreground(ColorError)
	TextWarningStyle   = lipgloss.NewStyle().Foreground(ColorWarning)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(SpaceXS)

	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText).
				MarginTop(SpaceXS)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Width(LabelWidth)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorLink).
			Underline(true)

	FocusMarkerStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)
)

// Component styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Padding(0, SpaceSM).
			Background(ColorSurfaceAlt).
			Foreground(ColorText)

	ButtonFocusedStyle = ButtonStyle.
				Background(ColorPrimary).
				Foreground(ColorBackground).
				Bold(true)

	ButtonDisabledStyle = ButtonStyle.
				Foreground(ColorTextTertiary)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, SpaceXS)

	InputFocusedStyle = InputStyle.
				BorderForeground(ColorPrimary)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, SpaceSM)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorSurfaceAlt).
			Foreground(ColorText).
			Padding(0, SpaceSM).
			Height(1)

	StatusBarSuccessStyle = StatusBarStyle.
				Background(ColorSuccess).
				Foreground(ColorBackground)

	StatusBarErrorStyle = StatusBarStyle.
				Background(ColorError).
				Foreground(ColorBackground)

	StatusBarWarningStyle = StatusBarStyle.
				Background(ColorWarning).
				Foreground(ColorBackground)

	StatusBarInfoStyle = StatusBarStyle.
				Background(ColorInfo).
				Foreground(ColorBackground)
)

// Log styles
var (
	LogErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	LogWarnStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	LogDebugStyle = lipgloss.NewStyle().Foreground(ColorTextTertiary)
	LogInfoStyle  = lipgloss.NewStyle().Foreground(ColorText)
)
