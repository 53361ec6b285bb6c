package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginView is the email/password form shown before a session exists.
type loginView struct {
	app      *App
	email    textinput.Model
	password textinput.Model
	focus    int // 0 = email, 1 = password
}

func newLoginView(app *App) *loginView {
	email := textinput.New()
	email.Placeholder = "Enter your email"
	email.Prompt = "Email    > "
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Enter your password"
	password.Prompt = "Password > "
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	v := &loginView{app: app, email: email, password: password}
	v.email.Focus()
	return v
}

func (v *loginView) focusCmd() tea.Cmd {
	return textinput.Blink
}

// reset clears the form, used after logout.
func (v *loginView) reset() {
	v.email.SetValue("")
	v.password.SetValue("")
	v.focus = 0
	v.password.Blur()
	v.email.Focus()
}

func (v *loginView) setFocus(idx int) tea.Cmd {
	v.focus = idx
	if idx == 0 {
		v.password.Blur()
		return v.email.Focus()
	}
	v.email.Blur()
	return v.password.Focus()
}

func (v *loginView) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			return v.setFocus(1 - v.focus)
		case "enter":
			if v.app.busy {
				return nil
			}
			if v.focus == 0 {
				return v.setFocus(1)
			}
			email := strings.TrimSpace(v.email.Value())
			password := v.password.Value()
			if email == "" || password == "" {
				v.app.statusMsg = "Login failed"
				return nil
			}
			return v.app.startRequest(v.app.loginCmd(email, password))
		}
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return cmd
}

func (v *loginView) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome back"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Please enter your details to sign in"))
	b.WriteString("\n\n")
	b.WriteString(v.email.View())
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n\n")
	if line := v.app.busyLine("Signing in..."); line != "" {
		b.WriteString(line)
	} else if status := v.app.statusLine(); status != "" {
		b.WriteString(status)
	} else {
		b.WriteString(mutedStyle.Render("enter: login · tab: switch field · ctrl+c: quit"))
	}

	card := panelStyle.Render(b.String())
	if v.app.width > 0 && v.app.height > 0 {
		return lipgloss.Place(v.app.width, v.app.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}
