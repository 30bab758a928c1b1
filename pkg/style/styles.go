package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)
)

// Package element styles
var (
	OptionStyle = lipgloss.NewStyle().
			Foreground(OptionColor).
			Bold(true)

	FlagStyle = lipgloss.NewStyle().
			Foreground(FlagColor)

	ConditionStyle = lipgloss.NewStyle().
			Foreground(ConditionColor)

	FileStyle = lipgloss.NewStyle().
			Foreground(FileColor)

	GroupTypeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Italic(true)
)

// Indicators
var (
	RecommendedIndicator = SuccessStyle.Render("★")
	RequiredIndicator    = WarningStyle.Render("!")
	NotUsableIndicator   = ErrorStyle.Render("✗")
	OptionIndicator      = MutedStyle.Render("○")
)

func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
