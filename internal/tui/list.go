package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/view"
)

type sortKey int

const (
	sortCreated sortKey = iota
	sortPublished
	sortTitle
)

// sortState is one stop in the sort cycle the `s` key walks through.
type sortState struct {
	key sortKey
	asc bool
}

var sortCycle = []sortState{
	{sortCreated, false},
	{sortCreated, true},
	{sortPublished, false},
	{sortPublished, true},
	{sortTitle, true},
	{sortTitle, false},
}

func (s sortState) label() string {
	var name string
	switch s.key {
	case sortPublished:
		name = "published"
	case sortTitle:
		name = "title"
	default:
		name = "created"
	}
	if s.asc {
		return name + " ^"
	}
	return name + " v"
}

// sortArticles orders the slice in place. The sort is stable so equal
// keys keep their server order.
func sortArticles(articles []api.Article, s sortState) {
	less := func(i, j int) bool {
		switch s.key {
		case sortTitle:
			return strings.ToLower(articles[i].Title) < strings.ToLower(articles[j].Title)
		case sortPublished:
			return publishedTime(articles[i]).Before(publishedTime(articles[j]))
		default:
			return articles[i].CreatedAt.Before(articles[j].CreatedAt.Time)
		}
	}
	if !s.asc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(articles, less)
}

func publishedTime(a api.Article) time.Time {
	if a.PublishDate == nil {
		return time.Time{}
	}
	return a.PublishDate.Time
}

func publishDatePtr(a api.Article) *time.Time {
	if a.PublishDate == nil {
		return nil
	}
	return &a.PublishDate.Time
}

func titleOrPlaceholder(a api.Article) string {
	if strings.TrimSpace(a.Title) == "" {
		return "(no title)"
	}
	return a.Title
}

// keywordLabel renders the decoded keyword field as a short tag list:
// at most three tags plus an overflow count.
func keywordLabel(k view.Keywords) string {
	tags, overflow := k.Tags(3)
	if len(tags) == 0 {
		return view.Unspecified
	}
	label := strings.Join(tags, ", ")
	if overflow > 0 {
		label += fmt.Sprintf(" +%d more", overflow)
	}
	return label
}

// articleMeta is the second line of a list item.
func articleMeta(a api.Article) string {
	parts := []string{
		view.DisplayURL(a.URL),
		view.LanguageName(a.MetaLang),
		keywordLabel(view.ParseKeywords(a.MetaKeywords)),
		view.FormatDatePtr(publishDatePtr(a)),
	}
	return strings.Join(parts, " · ")
}

func renderArticleItem(a api.Article, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + view.Truncate(titleOrPlaceholder(a), width-4))
	} else {
		title = itemTitleStyle.Render("  " + view.Truncate(titleOrPlaceholder(a), width-4))
	}

	meta := "  " + itemMetaStyle.Render(view.Truncate(articleMeta(a), width-4))

	return title + "\n" + meta
}

func renderList(articles []api.Article, cursor int, height int, width int) string {
	if len(articles) == 0 {
		return centerText("No articles yet. Press a to add one by URL.", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderArticleItem(articles[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func centerText(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", max(height/3, 0)) + strings.Repeat(" ", pad) + s
}
