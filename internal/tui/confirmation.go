package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateConfirmation handles the post-checkout screen. The cart is already
// cleared; continuing refetches the catalog so stock counts are current.
func (a *App) updateConfirmation(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "enter", "b", "esc":
		a.state = stateBrowse
		a.browse.refreshItems()
		return a.startRequest(a.fetchCatalogCmd())
	}
	return nil
}

func (a *App) confirmationView() string {
	var b strings.Builder
	b.WriteString(okStyle.Render("Order placed successfully!"))
	b.WriteString("\n\n")
	if a.confirmation.ID != 0 {
		b.WriteString(fmt.Sprintf("Order #%d\n", a.confirmation.ID))
	}
	if !a.confirmation.Total.IsZero() {
		b.WriteString(fmt.Sprintf("Charged: $%s\n", a.confirmation.Total.StringFixed(2)))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter: back to products"))

	card := panelStyle.Render(b.String())
	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}
