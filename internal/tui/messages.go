package tui

import (
	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/auth"
)

type articlesLoadedMsg struct {
	articles []api.Article
}

type articleLoadedMsg struct {
	article api.Article
}

type requestErrMsg struct {
	err error
}

type loginDoneMsg struct {
	result auth.Result
}

type extractDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	err        error
	fromDetail bool
}

type overviewLoadedMsg struct {
	stats api.OverviewStats
	err   error
}

type timelineLoadedMsg struct {
	points []api.TimelinePoint
	err    error
}

type domainsLoadedMsg struct {
	domains []api.DomainCount
	err     error
}
