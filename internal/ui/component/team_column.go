package component

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
)

// TeamColumn renders a team heading followed by its player cards. Only the first team is
// laid out left to right; the others are mirrored.
func TeamColumn(team gsi.TeamView, index int, selectedKey string, ctx CardContext) string {
	ctx.TeamKey = team.TeamKey
	ctx.Mirrored = index > 0

	headingStyle := styles.TeamHeaderHome
	if ctx.Mirrored {
		headingStyle = styles.TeamHeaderAway
	}

	rows := []string{ctx.line(headingStyle.Render(Truncate(team.TeamLabel, ctx.Width)))}

	for _, player := range team.Players {
		cardCtx := ctx
		cardCtx.Selected = selectedKey == team.TeamKey+"/"+player.PlayerKey
		rows = append(rows, PlayerCard(player, cardCtx), "")
	}

	return lipgloss.NewStyle().Width(ctx.Width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
