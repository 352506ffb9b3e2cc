package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderLoginScreen is the console's stand-in for the login page every
// unauthenticated view redirects to.
func renderLoginScreen(username, password string, submitting bool, errText string, width, height int) string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("newsdeck")
	subtitle := helpDimStyle.Render("Sign in to the extraction service")

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(subtitle + "\n\n")
	b.WriteString("username: " + username + "\n")
	b.WriteString("password: " + password + "\n\n")

	switch {
	case submitting:
		b.WriteString(helpDimStyle.Render("Signing in..."))
	case errText != "":
		b.WriteString(errorStyle.Render(errText))
	default:
		b.WriteString(helpDimStyle.Render("tab switch field · enter sign in · ctrl+c quit"))
	}

	card := promptCardStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func renderAddPrompt(input string, extracting bool, spinnerView string, errText string, width, height int) string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("Add article by URL")

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(input + "\n\n")

	switch {
	case extracting:
		b.WriteString(spinnerView + " " + helpDimStyle.Render("Extracting..."))
	case errText != "":
		b.WriteString(errorStyle.Render(errText))
	default:
		b.WriteString(helpDimStyle.Render("enter submit · esc cancel"))
	}

	card := promptCardStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func renderConfirmDelete(title string, width, height int) string {
	var b strings.Builder
	b.WriteString(errorStyle.Bold(true).Render("Delete article?") + "\n\n")
	b.WriteString(wrapText(title, 50) + "\n\n")
	b.WriteString(helpDimStyle.Render("y delete · any other key cancel"))

	card := promptCardStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
