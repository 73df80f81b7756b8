// Package theme holds the colors and styles of the multiplexer UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Design tokens.
var (
	Accent      = lipgloss.Color("#3B82F6")
	AccentAlt   = lipgloss.Color("#22C55E")
	AccentFocus = lipgloss.Color("#F9F871")

	Success = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#22C55E"}
	Warning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	Error   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	Info    = lipgloss.AdaptiveColor{Light: "#38BDF8", Dark: "#60A5FA"}

	TextPrimary   = lipgloss.Color("#F8FAFC")
	TextSecondary = lipgloss.Color("#CBD5E1")
	TextMuted     = lipgloss.Color("#94A3B8")

	Surface      = lipgloss.Color("#1A1A1A")
	SurfaceAlt   = lipgloss.Color("#242424")
	SurfaceInset = lipgloss.Color("#3A3A3A")

	Border         = lipgloss.Color("#3A3A3A")
	BorderSelected = Accent
	BorderFocused  = AccentFocus
	BorderScroll   = AccentAlt
)

// PaneBorder is the frame of an unselected pane.
var PaneBorder = lipgloss.NewStyle().Foreground(Border)

// PaneBorderSelected frames the selected pane in Normal mode.
var PaneBorderSelected = lipgloss.NewStyle().Foreground(BorderSelected)

// PaneBorderFocused frames the pane receiving keystrokes.
var PaneBorderFocused = lipgloss.NewStyle().Foreground(BorderFocused).Bold(true)

// PaneBorderScroll frames a pane browsing its history.
var PaneBorderScroll = lipgloss.NewStyle().Foreground(BorderScroll).Bold(true)

var PaneTitle = lipgloss.NewStyle().Foreground(TextSecondary)

var PaneTitleSelected = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)

// UnreadMarker flags panes with activity the user has not seen.
var UnreadMarker = lipgloss.NewStyle().Foreground(Warning).Bold(true)

var ScrollIndicator = lipgloss.NewStyle().Foreground(BorderScroll)

// ScrollIndicatorIdle marks a pane that has history but is at the live view.
var ScrollIndicatorIdle = lipgloss.NewStyle().Faint(true)

// PaneMessage is the text shown in a pane without a live session.
var PaneMessage = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

var PaneError = lipgloss.NewStyle().Foreground(Error)

// ===== Mode badges =====

var ModeNormal = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(Accent).
	Padding(0, 1)

var ModeFocused = lipgloss.NewStyle().
	Bold(true).
	Foreground(Surface).
	Background(AccentFocus).
	Padding(0, 1)

var ModeScroll = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(AccentAlt).
	Padding(0, 1)

var ModeActivity = lipgloss.NewStyle().
	Bold(true).
	Foreground(Surface).
	Background(Info).
	Padding(0, 1)

// ===== Pane state badges =====

var StatusBadgeRunning = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(Info).
	Padding(0, 1)

var StatusBadgePermissions = lipgloss.NewStyle().
	Bold(true).
	Foreground(Surface).
	Background(Warning).
	Padding(0, 1)

var StatusBadgeDone = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(Success).
	Padding(0, 1)

var StatusBadgeIdle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Background(SurfaceAlt).
	Padding(0, 1)

// ===== Dialog =====

// Dialog frames modal overlays such as the activity summary.
var Dialog = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Info).
	Background(Surface).
	Padding(1, 2)

var DialogTitle = lipgloss.NewStyle().Bold(true).Foreground(Info)

var DialogLabel = lipgloss.NewStyle().Foreground(TextMuted)

var DialogValue = lipgloss.NewStyle().Foreground(TextPrimary)

// StatusBar is the bottom line.
var StatusBar = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Background(Surface)

var StatusMessage = lipgloss.NewStyle().Foreground(AccentAlt)

var StatusError = lipgloss.NewStyle().Foreground(Error)

// FormatSuccess creates a success message
func FormatSuccess(msg string) string {
	return StatusMessage.Render("✓ " + msg)
}

// FormatError creates an error message
func FormatError(msg string) string {
	return StatusError.Render("✗ " + msg)
}
