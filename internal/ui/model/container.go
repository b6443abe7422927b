package model

import (
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
)

// Container draws a bordered box with the title centered in the top border. Width and height
// are the outer dimensions.
func Container(title string, width int, height int, content string, active bool) string {
	if height <= 2 || width <= 2 {
		return ""
	}

	base := styles.ContainerStyle
	if active {
		base = styles.ContainerStyleActive
	}

	return base.
		Border(styles.TitleBorder(styles.ContainerBorder, width-2, title)).
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(content)
}
