package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).MarginLeft(2)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("140")).MarginTop(1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	cardStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("255")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1).
			Margin(0, 1).
			Border(lipgloss.RoundedBorder())

	redCardStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("255")).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			Margin(0, 1).
			Border(lipgloss.RoundedBorder())

	hiddenCardStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("24")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1).
			Margin(0, 1).
			Border(lipgloss.RoundedBorder())

	playerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Margin(0, 1)

	currentPlayerStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color("46")).
				Padding(0, 2).
				Margin(0, 1)

	foldedPlayerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("241")).
				Foreground(lipgloss.Color("241")).
				Padding(0, 2).
				Margin(0, 1)

	potStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Padding(0, 2).
			Margin(1, 0).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("46")).
			Bold(true)

	actionBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Margin(1, 0)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Margin(1, 0)
)
