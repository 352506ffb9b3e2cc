package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/view"
)

// Each analytics region renders independently: a region whose fetch
// failed stays empty while the others still show.

func renderOverviewCards(stats *api.OverviewStats, width int) string {
	if stats == nil {
		return ""
	}

	latest := "none"
	if stats.LatestArticleDate != nil && !stats.LatestArticleDate.IsZero() {
		latest = view.FormatDate(stats.LatestArticleDate.Time)
	}

	cards := []struct {
		value string
		label string
	}{
		{fmt.Sprintf("%d", stats.TotalArticles), "total articles"},
		{fmt.Sprintf("%d", stats.RecentArticles), "last 30 days"},
		{fmt.Sprintf("%d", stats.ArticlesWithImages), "with images"},
		{latest, "latest addition"},
	}

	rendered := make([]string, len(cards))
	for i, c := range cards {
		body := cardValueStyle.Render(c.value) + "\n" + cardLabelStyle.Render(c.label)
		rendered[i] = cardStyle.Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderTimelineChart(points []api.TimelinePoint, width int) string {
	if len(points) == 0 {
		return ""
	}

	maxCount := 0
	for _, p := range points {
		if p.Count > maxCount {
			maxCount = p.Count
		}
	}

	labelWidth := 7 // "Aug 27 "
	countWidth := 5
	space := width - labelWidth - countWidth
	if space < 10 {
		space = 10
	}

	var b strings.Builder
	b.WriteString(chartTitleStyle.Render("Extractions per day"))
	b.WriteString("\n")
	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	for _, p := range points {
		bar := strings.Repeat("█", barWidth(p.Count, maxCount, space))
		b.WriteString(fmt.Sprintf("%s %s %d\n",
			chartLabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, view.FormatDay(p.Date))),
			barStyle.Render(bar),
			p.Count,
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDomainsChart(domains []api.DomainCount, width int) string {
	if len(domains) == 0 {
		return ""
	}

	labelWidth := 0
	maxCount := 0
	for _, d := range domains {
		if len(d.Domain) > labelWidth {
			labelWidth = len(d.Domain)
		}
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}
	if labelWidth > 30 {
		labelWidth = 30
	}

	space := width - labelWidth - 7
	if space < 10 {
		space = 10
	}

	// One hue per domain; palette size always matches category count.
	palette := view.HuePalette(len(domains))

	var b strings.Builder
	b.WriteString(chartTitleStyle.Render("Top source domains"))
	b.WriteString("\n")
	for i, d := range domains {
		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette[i]))
		bar := strings.Repeat("█", barWidth(d.Count, maxCount, space))
		b.WriteString(fmt.Sprintf("%s %s %d\n",
			chartLabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, view.Truncate(d.Domain, labelWidth))),
			barStyle.Render(bar),
			d.Count,
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// barWidth scales count into [1, space] cells; zero counts get no bar.
func barWidth(count, maxCount, space int) int {
	if count <= 0 || maxCount <= 0 || space <= 0 {
		return 0
	}
	w := count * space / maxCount
	if w < 1 {
		w = 1
	}
	if w > space {
		w = space
	}
	return w
}
