package notes

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle = lipgloss.NewStyle().Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Bold(true).
			Padding(0, 1)

	statusBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#778899"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224")).
				Padding(0, 0)

	listStyle = lipgloss.NewStyle().
			MarginRight(1).
			Border(lipgloss.NormalBorder(), false, false, false, false).
			BorderForeground(lipgloss.Color("#334455"))

	previewStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#334455"))

	publicBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a6e3a1")).
				Bold(true)

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0AF"))

	toastStyles = map[toastKind]lipgloss.Style{
		toastSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e1e2e")).
			Background(lipgloss.Color("#a6e3a1")).
			Padding(0, 1),
		toastError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e1e2e")).
			Background(lipgloss.Color("#f38ba8")).
			Padding(0, 1),
		toastInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e1e2e")).
			Background(lipgloss.Color("#89b4fa")).
			Padding(0, 1),
	}

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f9e2af")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
)

func renderHelpWithinWidth(width int, content string) string {
	if width <= 0 {
		return helpStyle.Render(content)
	}

	return helpStyle.Copy().
		Width(width).
		MaxWidth(width).
		Render(content)
}
