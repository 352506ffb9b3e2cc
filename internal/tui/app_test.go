package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/config"
)

func testApp() *App {
	return &App{
		cfg:           &config.Config{},
		log:           zap.NewNop().Sugar(),
		usernameInput: textinput.New(),
		passwordInput: textinput.New(),
		urlInput:      textinput.New(),
	}
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDeclineDeleteIssuesNoRequest(t *testing.T) {
	app := testApp()
	app.articles = []api.Article{{ID: 7, Title: "keep me"}}
	app.mode = modeConfirmDelete
	app.confirmID = 7
	app.confirmTitle = "keep me"

	_, cmd := app.Update(keyPress('n'))

	if cmd != nil {
		t.Fatalf("declining returned a command, want none")
	}
	if app.mode != modeList {
		t.Errorf("mode = %d, want modeList", app.mode)
	}
	if len(app.articles) != 1 || app.articles[0].ID != 7 {
		t.Errorf("articles changed on decline: %+v", app.articles)
	}
}

func TestDeclineDeleteFromDetailReturnsToDetail(t *testing.T) {
	app := testApp()
	app.article = &api.Article{ID: 7, Title: "keep me"}
	app.mode = modeConfirmDelete
	app.confirmID = 7
	app.confirmFromDetail = true

	_, cmd := app.Update(keyPress('x'))

	if cmd != nil {
		t.Fatalf("declining returned a command, want none")
	}
	if app.mode != modeDetail {
		t.Errorf("mode = %d, want modeDetail", app.mode)
	}
	if app.article == nil || app.article.ID != 7 {
		t.Errorf("article changed on decline: %+v", app.article)
	}
}

func TestConfirmDeleteIssuesRequest(t *testing.T) {
	app := testApp()
	app.articles = []api.Article{{ID: 7}}
	app.mode = modeConfirmDelete
	app.confirmID = 7

	_, cmd := app.Update(keyPress('y'))

	if cmd == nil {
		t.Fatal("confirming returned no command, want the delete request")
	}
	if app.mode != modeList {
		t.Errorf("mode = %d, want modeList", app.mode)
	}
}

func TestRejectedTokenReturnsToLogin(t *testing.T) {
	app := testApp()
	app.mode = modeList

	app.Update(requestErrMsg{err: &api.APIError{StatusCode: 401, Detail: "Could not validate credentials"}})

	if app.mode != modeLogin {
		t.Errorf("mode = %d, want modeLogin", app.mode)
	}
	if app.errText != "" {
		t.Errorf("errText = %q, want none; the login screen is the message", app.errText)
	}
}

func TestBusinessErrorStaysInPlace(t *testing.T) {
	app := testApp()
	app.mode = modeList

	app.Update(requestErrMsg{err: &api.APIError{StatusCode: 404, Detail: "News article not found"}})

	if app.mode != modeList {
		t.Errorf("mode = %d, want modeList", app.mode)
	}
	if app.errText != "News article not found" {
		t.Errorf("errText = %q, want the server detail verbatim", app.errText)
	}
}

func TestExtractFailureRestoresPrompt(t *testing.T) {
	app := testApp()
	app.mode = modeAdd
	app.extracting = true

	app.Update(extractDoneMsg{err: &api.APIError{StatusCode: 422, Detail: "Invalid URL"}})

	if app.extracting {
		t.Error("extracting still set after a failed request")
	}
	if app.mode != modeAdd {
		t.Errorf("mode = %d, want modeAdd", app.mode)
	}
	if app.errText != "Invalid URL" {
		t.Errorf("errText = %q", app.errText)
	}
}
