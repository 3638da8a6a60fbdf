package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"location-stories/types"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorBorder = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}

	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(72)
)

func renderSeeds(w io.Writer, resp *types.SeedResponse) {
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d seed(s) near %s", len(resp.Seeds), resp.Location)))
	for i, seed := range resp.Seeds {
		body := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(fmt.Sprintf("[%d] %s", i, seed.Title)),
			seed.Summary,
			dimStyle.Render(fmt.Sprintf("%s · %s", seed.Style, seed.ID)),
		)
		fmt.Fprintln(w, cardStyle.Render(body))
	}
}

func renderStory(w io.Writer, story *types.FullStory) {
	meta := fmt.Sprintf("%s · %ds · %s", story.Style, story.DurationSeconds, strings.Join(story.Sources, ", "))
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(story.Title),
		dimStyle.Render(meta),
		"",
		story.Content,
	)
	fmt.Fprintln(w, cardStyle.Render(body))
}
