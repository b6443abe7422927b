package component

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

func NewTextInputModel(value string, placeholder string) textinput.Model {
	input := textinput.New()
	input.Cursor.Style = styles.CursorStyle
	input.SetValue(value)
	input.CharLimit = 255
	input.Width = 60
	input.Placeholder = placeholder
	input.PromptStyle = styles.NoStyle
	input.TextStyle = styles.NoStyle

	return input
}

// Truncate shortens value to at most width cells.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(value) <= width {
		return value
	}

	return truncate.StringWithTail(value, uint(width), ellipsis) //nolint:gosec
}

// Bar renders a fixed width meter. Missing or zero maximums render an empty bar.
func Bar(value gsi.Number, maxValue gsi.Number, width int, colour lipgloss.Color) string {
	if width <= 0 {
		return ""
	}

	ratio := 0.0
	if value.Valid && maxValue.Valid && maxValue.Value > 0 {
		ratio = math.Min(1, math.Max(0, value.Value/maxValue.Value))
	}

	meter := progress.New(
		progress.WithSolidFill(string(colour)),
		progress.WithWidth(width),
		progress.WithoutPercentage())
	meter.EmptyColor = string(styles.Gray)

	return meter.ViewAs(ratio)
}

// Fraction renders "value/max" using whole numbers, or "-" when either side is missing.
func Fraction(value gsi.Number, maxValue gsi.Number) string {
	if !value.Valid || !maxValue.Valid {
		return "-"
	}

	return strconv.Itoa(int(value.Value)) + "/" + strconv.Itoa(int(maxValue.Value))
}

// Whole renders a number truncated towards zero, or "-" when missing.
func Whole(value gsi.Number) string {
	if !value.Valid {
		return "-"
	}

	return strconv.Itoa(int(math.Trunc(value.Value)))
}

// Abbreviate turns "Berserkers Call" into "BC" and single words into their first letters.
func Abbreviate(label string, width int) string {
	words := strings.Fields(label)
	if len(words) == 0 || width <= 0 {
		return ""
	}

	if len(words) == 1 {
		return truncate.String(words[0], uint(width)) //nolint:gosec
	}

	var short strings.Builder
	for _, word := range words {
		if short.Len() >= width {
			break
		}

		short.WriteString(word[:1])
	}

	return short.String()
}

// CooldownCell highlights the leading part of a cell in proportion to the cooldown remaining.
func CooldownCell(label string, ratio float64, width int) string {
	text := lipgloss.PlaceHorizontal(width, lipgloss.Center, Truncate(label, width))
	filled := int(math.Ceil(ratio * float64(width)))
	filled = min(width, max(0, filled))

	runes := []rune(text)
	if len(runes) < filled {
		return styles.CellCooldown.Render(text)
	}

	return styles.CellCooldown.Render(string(runes[:filled])) + styles.Cell.Render(string(runes[filled:]))
}

// Reverse flips the order of horizontal segments for mirrored layouts.
func Reverse(parts []string) []string {
	reversed := make([]string, len(parts))
	for idx, part := range parts {
		reversed[len(parts)-1-idx] = part
	}

	return reversed
}
