package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	ContainerTitle       = lipgloss.NewStyle().Bold(true)
	ContainerBorder      = lipgloss.RoundedBorder()
	ContainerStyle       = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Gray)
	ContainerStyleActive = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Accent)

	HeaderContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Left)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(Black)
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()
	HelpStyle    = BlurredStyle

	FocusedSubmitButton = lipgloss.NewStyle().Foreground(Accent).Render("[ Save & Reconnect ]")
	BlurredSubmitButton = fmt.Sprintf("[ %s ]", BlurredStyle.Render("Save & Reconnect"))

	Black    = lipgloss.Color("#111111")
	Gray     = lipgloss.Color("#3e3e3e")
	GrayDark = lipgloss.Color("#2f3030")
	Dim      = lipgloss.Color("#6b6b6b")
	White    = lipgloss.Color("#cccccc")

	Radiant = lipgloss.Color("#5fb35f")
	Dire    = lipgloss.Color("#c8473b")
	Health  = lipgloss.Color("#3fae49")
	Mana    = lipgloss.Color("#3b7bd4")
	Gold    = lipgloss.Color("#e6b422")
	Yellow  = lipgloss.Color("#d7b740")
	Red     = lipgloss.Color("#B8383B")
	Green   = lipgloss.Color("#4d9f55")

	Title = lipgloss.NewStyle().Bold(true).Foreground(White).PaddingRight(2)

	BadgeLive       = lipgloss.NewStyle().Foreground(Green).Bold(true).PaddingRight(2)
	BadgePending    = lipgloss.NewStyle().Foreground(Yellow).Bold(true).PaddingRight(2)
	BadgeOffline    = lipgloss.NewStyle().Foreground(Red).Bold(true).PaddingRight(2)
	HeaderValue     = lipgloss.NewStyle().Foreground(White).PaddingRight(2)
	HeaderValueDim  = lipgloss.NewStyle().Foreground(Dim).PaddingRight(2)
	WaitingForData  = lipgloss.NewStyle().Foreground(Dim).Align(lipgloss.Center)
	TeamHeaderHome  = lipgloss.NewStyle().Foreground(Radiant).Bold(true)
	TeamHeaderAway  = lipgloss.NewStyle().Foreground(Dire).Bold(true)
	HeroName        = lipgloss.NewStyle().Bold(true).Foreground(White)
	HeroNameDead    = lipgloss.NewStyle().Bold(true).Foreground(Dim).Strikethrough(true)
	Level           = lipgloss.NewStyle().Foreground(Gold)
	Respawn         = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Stats           = lipgloss.NewStyle().Foreground(Dim)
	Cell            = lipgloss.NewStyle().Foreground(White).Background(GrayDark)
	CellEmpty       = lipgloss.NewStyle().Foreground(Gray).Background(Black)
	CellBackpack    = lipgloss.NewStyle().Foreground(Dim).Background(Black)
	CellCooldown    = lipgloss.NewStyle().Foreground(Black).Background(Yellow).Bold(true)
	AbilityPassive  = lipgloss.NewStyle().Foreground(Dim).Background(GrayDark)
	AbilityUnlearnt = lipgloss.NewStyle().Foreground(Gray).Background(Black)
	Charges         = lipgloss.NewStyle().Foreground(Gold)

	StatusError    = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage  = lipgloss.NewStyle().Foreground(Green).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusSelected = lipgloss.NewStyle().Foreground(Accent).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusLink     = lipgloss.NewStyle().Foreground(Mana).Underline(true).PaddingRight(1)
	StatusHelp     = lipgloss.NewStyle().Foreground(Dim).Bold(true).Align(lipgloss.Center).PaddingRight(1)
	StatusVersion  = lipgloss.NewStyle().Foreground(Green).Bold(true).Align(lipgloss.Center).PaddingRight(1)

	PanelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(16)
	PanelValue = lipgloss.NewStyle().Width(60)

	HelpBox = lipgloss.NewStyle().Padding(2)

	IconDay      = "☀"
	IconNight    = "☾"
	IconClock    = "⏱"
	IconProvider = "🌍"
	IconDead     = "💀"
	IconMissing  = "?"
	IconPaused   = "⏸"
)

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// WrapX will wrap a centered string with the supplied character up to the lenth specified.
func WrapX(width int, value string, character string) string {
	all := max(0, width-lipgloss.Width(value))

	return strings.Repeat(character, all/2) + value + strings.Repeat(character, all-all/2)
}

func TitleBorder(border lipgloss.Border, width int, title string) lipgloss.Border {
	border.Top = WrapX(width, " "+title+" ", border.Top)

	return border
}
