package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/auth"
	"github.com/ecoskun/newsdeck/internal/browser"
	"github.com/ecoskun/newsdeck/internal/config"
	"github.com/ecoskun/newsdeck/internal/session"
)

type mode int

const (
	modeLogin mode = iota
	modeList
	modeAdd
	modeDetail
	modeConfirmDelete
	modeAnalytics
	modeHelp
)

type App struct {
	cfg    *config.Config
	client *api.Client
	store  *session.Store
	log    *zap.SugaredLogger

	mode   mode
	width  int
	height int

	// List state
	articles []api.Article
	cursor   int
	sortIdx  int
	loading  bool

	// Detail state: the fetched article is owned here and handed to the
	// delete/open actions explicitly.
	article      *api.Article
	detailScroll int

	// Sub-components
	usernameInput textinput.Model
	passwordInput textinput.Model
	urlInput      textinput.Model
	spinner       spinner.Model

	// In-flight flags
	submittingLogin bool
	extracting      bool

	// Delete confirmation
	confirmID         int64
	confirmTitle      string
	confirmFromDetail bool

	// Analytics state, replaced wholesale on every reload
	overview *api.OverviewStats
	timeline []api.TimelinePoint
	domains  []api.DomainCount

	greeting string
	errText  string
	notice   string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg    *config.Config
	Client *api.Client
	Store  *session.Store
	Log    *zap.SugaredLogger
}

func NewApp(opts RunOpts) *App {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	url := textinput.New()
	url.Placeholder = "https://..."
	url.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		cfg:           opts.Cfg,
		client:        opts.Client,
		store:         opts.Store,
		log:           opts.Log,
		usernameInput: username,
		passwordInput: password,
		urlInput:      url,
		spinner:       sp,
		mode:          modeLogin,
	}

	if auth.IsAuthenticated(opts.Store) {
		a.mode = modeList
		a.refreshGreeting()
	}

	return a
}

func (a *App) refreshGreeting() {
	// A corrupt cached profile reads as no user.
	user, err := a.store.CurrentUser()
	if err != nil {
		a.greeting = ""
		return
	}
	a.greeting = "Hello, " + user.Username
}

func (a *App) Init() tea.Cmd {
	if a.mode == modeList {
		a.loading = true
		return tea.Batch(a.loadArticlesCmd(), a.spinner.Tick)
	}
	return textinput.Blink
}

// ---- commands -------------------------------------------------------------

func (a *App) loadArticlesCmd() tea.Cmd {
	client := a.client
	timeout := a.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		articles, err := client.ListArticles(ctx)
		if err != nil {
			return requestErrMsg{err: err}
		}
		return articlesLoadedMsg{articles: articles}
	}
}

func (a *App) loadArticleCmd(id int64) tea.Cmd {
	client := a.client
	timeout := a.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		article, err := client.GetArticle(ctx, id)
		if err != nil {
			return requestErrMsg{err: err}
		}
		return articleLoadedMsg{article: article}
	}
}

func (a *App) loginCmd(username, password string) tea.Cmd {
	client := a.client
	store := a.store
	timeout := a.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loginDoneMsg{result: auth.Login(ctx, client, store, username, password)}
	}
}

func (a *App) extractCmd(url string) tea.Cmd {
	client := a.client
	timeout := a.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := client.ExtractArticle(ctx, url)
		return extractDoneMsg{err: err}
	}
}

func (a *App) deleteCmd(id int64, fromDetail bool) tea.Cmd {
	client := a.client
	timeout := a.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return deleteDoneMsg{err: client.DeleteArticle(ctx, id), fromDetail: fromDetail}
	}
}

// loadAnalyticsCmds drops the previous data and issues the three
// independent fetches; a failed region simply stays empty.
func (a *App) loadAnalyticsCmds() tea.Cmd {
	a.overview = nil
	a.timeline = nil
	a.domains = nil

	client := a.client
	timeout := a.cfg.Timeout()
	days := a.cfg.TimelineWindow()

	overview := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		stats, err := client.OverviewStats(ctx)
		return overviewLoadedMsg{stats: stats, err: err}
	}
	timeline := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		points, err := client.TimelineStats(ctx, days)
		return timelineLoadedMsg{points: points, err: err}
	}
	domains := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		counts, err := client.DomainStats(ctx)
		return domainsLoadedMsg{domains: counts, err: err}
	}

	return tea.Batch(overview, timeline, domains)
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return requestErrMsg{err: err}
		}
		return nil
	}
}

// ---- update ---------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case articlesLoadedMsg:
		a.loading = false
		a.articles = msg.articles
		sortArticles(a.articles, sortCycle[a.sortIdx])
		if a.cursor >= len(a.articles) {
			a.cursor = max(0, len(a.articles)-1)
		}
		return a, nil

	case articleLoadedMsg:
		article := msg.article
		a.article = &article
		a.detailScroll = 0
		a.mode = modeDetail
		return a, nil

	case loginDoneMsg:
		a.submittingLogin = false
		if !msg.result.Success {
			a.errText = msg.result.Error
			return a, nil
		}
		a.errText = ""
		a.passwordInput.SetValue("")
		a.refreshGreeting()
		a.mode = modeList
		a.loading = true
		return a, tea.Batch(a.loadArticlesCmd(), a.spinner.Tick)

	case extractDoneMsg:
		// Restore the prompt no matter how the request ended.
		a.extracting = false
		if msg.err != nil {
			a.log.Warnw("extract failed", "err", msg.err)
			a.errText = api.UserMessage(msg.err)
			return a, a.redirectIfExpired(msg.err)
		}
		a.errText = ""
		a.urlInput.SetValue("")
		a.notice = "Article extracted"
		a.mode = modeList
		a.loading = true
		return a, tea.Batch(a.loadArticlesCmd(), a.spinner.Tick)

	case deleteDoneMsg:
		if msg.err != nil {
			a.log.Warnw("delete failed", "err", msg.err)
			a.errText = api.UserMessage(msg.err)
			return a, a.redirectIfExpired(msg.err)
		}
		a.notice = "Article deleted"
		if msg.fromDetail {
			a.article = nil
			a.mode = modeList
		}
		a.loading = true
		return a, tea.Batch(a.loadArticlesCmd(), a.spinner.Tick)

	case requestErrMsg:
		a.loading = false
		a.log.Warnw("request failed", "err", msg.err)
		a.errText = api.UserMessage(msg.err)
		return a, a.redirectIfExpired(msg.err)

	case overviewLoadedMsg:
		if msg.err != nil {
			a.log.Warnw("overview stats fetch failed", "err", msg.err)
			return a, nil
		}
		stats := msg.stats
		a.overview = &stats
		return a, nil

	case timelineLoadedMsg:
		if msg.err != nil {
			a.log.Warnw("timeline stats fetch failed", "err", msg.err)
			return a, nil
		}
		a.timeline = msg.points
		return a, nil

	case domainsLoadedMsg:
		if msg.err != nil {
			a.log.Warnw("domain stats fetch failed", "err", msg.err)
			return a, nil
		}
		a.domains = msg.domains
		return a, nil

	case spinner.TickMsg:
		if a.loading || a.extracting || a.submittingLogin {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// redirectIfExpired sends the app back to the login screen when the
// server rejects the token. No message is shown; the login screen is
// the message.
func (a *App) redirectIfExpired(err error) tea.Cmd {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
		a.errText = ""
		a.mode = modeLogin
		a.usernameInput.Focus()
		return textinput.Blink
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeLogin:
		return a.handleLoginKey(msg)
	case modeAdd:
		return a.handleAddKey(msg)
	case modeConfirmDelete:
		return a.handleConfirmKey(msg)
	case modeDetail:
		return a.handleDetailKey(msg)
	case modeAnalytics:
		return a.handleAnalyticsKey(msg)
	case modeHelp:
		if s := msg.String(); s == "?" || s == "esc" || s == "q" {
			a.mode = modeList
		}
		return a, nil
	}

	return a.handleListKey(msg)
}

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.submittingLogin {
		return a, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if a.usernameInput.Focused() {
			a.usernameInput.Blur()
			a.passwordInput.Focus()
		} else {
			a.passwordInput.Blur()
			a.usernameInput.Focus()
		}
		return a, textinput.Blink
	case "enter":
		username := strings.TrimSpace(a.usernameInput.Value())
		password := a.passwordInput.Value()
		if username == "" || password == "" {
			a.errText = "username and password are required"
			return a, nil
		}
		a.errText = ""
		a.submittingLogin = true
		return a, tea.Batch(a.loginCmd(username, password), a.spinner.Tick)
	}

	var cmd tea.Cmd
	if a.usernameInput.Focused() {
		a.usernameInput, cmd = a.usernameInput.Update(msg)
	} else {
		a.passwordInput, cmd = a.passwordInput.Update(msg)
	}
	return a, cmd
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Notices are sticky until the next keypress.
	a.notice = ""

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.articles)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "enter", "v":
		if sel := a.selected(); sel != nil {
			return a, a.loadArticleCmd(sel.ID)
		}
		return a, nil
	case "o":
		if sel := a.selected(); sel != nil {
			return a, openBrowserCmd(sel.URL)
		}
		return a, nil
	case "a":
		a.errText = ""
		a.mode = modeAdd
		a.urlInput.Focus()
		return a, textinput.Blink
	case "d":
		if sel := a.selected(); sel != nil {
			a.confirmID = sel.ID
			a.confirmTitle = titleOrPlaceholder(*sel)
			a.confirmFromDetail = false
			a.mode = modeConfirmDelete
		}
		return a, nil
	case "s":
		a.sortIdx = (a.sortIdx + 1) % len(sortCycle)
		sortArticles(a.articles, sortCycle[a.sortIdx])
		a.cursor = 0
		return a, nil
	case "r":
		if !a.loading {
			a.errText = ""
			a.loading = true
			return a, tea.Batch(a.loadArticlesCmd(), a.spinner.Tick)
		}
		return a, nil
	case "g":
		a.mode = modeAnalytics
		return a, a.loadAnalyticsCmds()
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !a.extracting {
			a.errText = ""
			a.urlInput.Blur()
			a.mode = modeList
		}
		return a, nil
	case "enter":
		if a.extracting {
			return a, nil
		}
		url := strings.TrimSpace(a.urlInput.Value())
		if url == "" {
			return a, nil
		}
		a.errText = ""
		a.extracting = true
		return a, tea.Batch(a.extractCmd(url), a.spinner.Tick)
	}

	if a.extracting {
		return a, nil
	}
	var cmd tea.Cmd
	a.urlInput, cmd = a.urlInput.Update(msg)
	return a, cmd
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fromDetail := a.confirmFromDetail
	id := a.confirmID

	if fromDetail {
		a.mode = modeDetail
	} else {
		a.mode = modeList
	}

	// Anything but an explicit yes cancels without issuing a request.
	if msg.String() != "y" {
		return a, nil
	}
	return a, a.deleteCmd(id, fromDetail)
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.notice = ""

	switch msg.String() {
	case "esc", "b":
		a.article = nil
		a.mode = modeList
		return a, nil
	case "q":
		return a, tea.Quit
	case "j", "down":
		a.detailScroll++
		return a, nil
	case "k", "up":
		if a.detailScroll > 0 {
			a.detailScroll--
		}
		return a, nil
	case "o":
		if a.article != nil {
			return a, openBrowserCmd(a.article.URL)
		}
		return a, nil
	case "d":
		if a.article != nil {
			a.confirmID = a.article.ID
			a.confirmTitle = titleOrPlaceholder(*a.article)
			a.confirmFromDetail = true
			a.mode = modeConfirmDelete
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleAnalyticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		a.mode = modeList
		return a, nil
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.loadAnalyticsCmds()
	}
	return a, nil
}

func (a *App) selected() *api.Article {
	if len(a.articles) == 0 || a.cursor >= len(a.articles) {
		return nil
	}
	return &a.articles[a.cursor]
}

// ---- view -----------------------------------------------------------------

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsdeck")
	}

	switch a.mode {
	case modeLogin:
		return renderLoginScreen(
			a.usernameInput.View(), a.passwordInput.View(),
			a.submittingLogin, a.errText, a.width, a.height,
		)
	case modeAdd:
		return renderAddPrompt(
			a.urlInput.View(), a.extracting, a.spinner.View(),
			a.errText, a.width, a.height,
		)
	case modeConfirmDelete:
		return renderConfirmDelete(a.confirmTitle, a.width, a.height)
	case modeHelp:
		return a.renderHelp()
	}

	header := a.renderHeader()
	contentHeight := a.height - 2 // header + status bar
	if contentHeight < 3 {
		contentHeight = 3
	}

	var content string
	var hints string
	switch a.mode {
	case modeDetail:
		content = renderDetail(a.article, a.width, contentHeight, a.detailScroll)
		hints = " j/k scroll  o open  d delete  esc back "
	case modeAnalytics:
		content = a.renderAnalytics(contentHeight)
		hints = " r reload  esc back  q quit "
	default:
		content = renderList(a.articles, a.cursor, contentHeight, a.width)
		content = padToHeight(content, contentHeight)
		hints = " a add  v view  d delete  s sort  g stats  r reload  q quit "
	}

	status := a.renderStatus(hints)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (a *App) renderHeader() string {
	left := headerStyle.Render("newsdeck")
	right := headerGreetingStyle.Render(a.greeting + "  " + time.Now().Format("Jan 2"))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}

func (a *App) renderStatus(hints string) string {
	var left string
	switch {
	case a.errText != "":
		left = errorStyle.Render(a.errText)
	case a.notice != "":
		left = noticeStyle.Render(a.notice)
	case a.mode == modeAnalytics:
		left = fmt.Sprintf(" timeline window: %d days", a.cfg.TimelineWindow())
	default:
		left = fmt.Sprintf(" %d articles · sort: %s", len(a.articles), sortCycle[a.sortIdx].label())
	}
	if a.loading {
		left = a.spinner.View() + " " + left
	}
	return renderStatusBar(left, hints, a.width)
}

func (a *App) renderAnalytics(height int) string {
	sections := []string{renderOverviewCards(a.overview, a.width)}
	if chart := renderTimelineChart(a.timeline, a.width); chart != "" {
		sections = append(sections, chart)
	}
	if chart := renderDomainsChart(a.domains, a.width); chart != "" {
		sections = append(sections, chart)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return padToHeight(content, height)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("newsdeck")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("List") + "\n" +
		"  j/k, ↑/↓     Move through articles\n" +
		"  enter, v      Open article detail\n" +
		"  a             Add article by URL\n" +
		"  d             Delete article (asks first)\n" +
		"  s             Cycle sort order\n" +
		"  o             Open original in browser\n" +
		"  r             Reload from server\n" +
		"  g             Analytics dashboard\n\n" +
		dim.Render("Detail") + "\n" +
		"  j/k           Scroll\n" +
		"  o             Open original in browser\n" +
		"  d             Delete article (asks first)\n" +
		"  esc, b        Back to list\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func padToHeight(content string, height int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
