package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/view"
)

func renderDetail(a *api.Article, width, height, scroll int) string {
	if a == nil {
		return centerText("Loading article...", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := detailTitleStyle.Width(contentWidth).Render(titleOrPlaceholder(*a))
	meta := detailMetaStyle.Render(fmt.Sprintf(
		"%s · published %s · added %s",
		view.LanguageName(a.MetaLang),
		view.FormatDatePtr(publishDatePtr(*a)),
		view.FormatDate(a.CreatedAt.Time),
	))

	sections := []string{title, meta}

	if media := mediaLine(*a); media != "" {
		sections = append(sections, detailLinkStyle.Render(media))
	}

	sections = append(sections, "")

	paragraphs := view.Paragraphs(a.Content)
	if len(paragraphs) == 0 {
		sections = append(sections, detailBodyStyle.Render("(no content)"))
	} else {
		for _, p := range paragraphs {
			sections = append(sections, detailBodyStyle.Width(contentWidth).Render(wrapText(p, contentWidth)), "")
		}
	}

	words := view.WordCount(a.Content)
	sections = append(sections, itemMetaStyle.Render(fmt.Sprintf(
		"%d words · %d min read", words, view.ReadingTime(words),
	)))

	if kw := detailKeywords(*a); kw != "" {
		sections = append(sections, itemMetaStyle.Render("keywords: "+kw))
	}

	sections = append(sections, detailLinkStyle.Render("Original: "+a.URL))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply scroll offset, clamped so overscroll sticks at the bottom
	// instead of snapping back to the top.
	lines := strings.Split(content, "\n")
	if scroll >= len(lines) {
		scroll = len(lines) - 1
	}
	if scroll > 0 {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// mediaLine summarizes the optional image and video attachments. Each is
// shown or hidden independently.
func mediaLine(a api.Article) string {
	var parts []string
	if a.ImageURL != "" {
		parts = append(parts, "image: "+view.DisplayURL(a.ImageURL))
	}
	if kind := view.ClassifyVideo(a.VideoURL); kind != view.VideoNone {
		parts = append(parts, fmt.Sprintf("video (%s): %s", kind, view.DisplayURL(a.VideoURL)))
	}
	return strings.Join(parts, " · ")
}

// detailKeywords shows every tag, unlike the 3-tag list column.
func detailKeywords(a api.Article) string {
	tags, _ := view.ParseKeywords(a.MetaKeywords).Tags(0)
	if len(tags) == 0 {
		return ""
	}
	return strings.Join(tags, ", ")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
