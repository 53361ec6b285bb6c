package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VanceeBassem/ecommerce-frontend/internal/pricing"
)

// orderView is the order details screen: the cart snapshot with editable
// quantities and the full totals breakdown before the order is placed.
type orderView struct {
	app      *App
	cursor   int
	editing  bool
	qtyInput textinput.Model
}

func newOrderView(app *App) *orderView {
	qty := textinput.New()
	qty.Prompt = ""
	qty.CharLimit = 4
	qty.Width = 5
	return &orderView{app: app, qtyInput: qty}
}

// enter prepares the view when the user proceeds to checkout.
func (v *orderView) enter() {
	v.cursor = 0
	v.editing = false
	v.qtyInput.Blur()
}

func (v *orderView) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	lines := v.app.cart.Lines()
	if v.cursor >= len(lines) && len(lines) > 0 {
		v.cursor = len(lines) - 1
	}

	if v.editing {
		return v.updateEditing(key)
	}

	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(lines)-1 {
			v.cursor++
		}
	case "+":
		if v.cursor < len(lines) {
			line := lines[v.cursor]
			v.app.cart.SetQuantity(line.Product.ID, line.Quantity+1)
		}
	case "-":
		// On this screen a line is never removed; the quantity floors at 1.
		if v.cursor < len(lines) && lines[v.cursor].Quantity > 1 {
			line := lines[v.cursor]
			v.app.cart.SetQuantity(line.Product.ID, line.Quantity-1)
		}
	case "e", "enter":
		if v.cursor < len(lines) {
			v.editing = true
			v.qtyInput.SetValue(strconv.Itoa(lines[v.cursor].Quantity))
			return v.qtyInput.Focus()
		}
	case "p":
		if v.app.busy || v.app.cart.IsEmpty() {
			return nil
		}
		return v.app.startRequest(v.app.submitOrderCmd())
	case "esc", "b":
		v.app.statusMsg = ""
		v.app.browse.refreshItems()
		v.app.state = stateBrowse
	}
	return nil
}

// updateEditing handles the direct quantity entry field. Values below 1 and
// non-numbers are rejected silently, keeping the previous quantity.
func (v *orderView) updateEditing(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		v.editing = false
		v.qtyInput.Blur()
		lines := v.app.cart.Lines()
		if v.cursor >= len(lines) {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v.qtyInput.Value()))
		if err != nil || n < 1 {
			return nil
		}
		v.app.cart.SetQuantity(lines[v.cursor].Product.ID, n)
		return nil
	case "esc":
		v.editing = false
		v.qtyInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	v.qtyInput, cmd = v.qtyInput.Update(key)
	return cmd
}

func (v *orderView) view() string {
	lines := v.app.cart.Lines()

	var items strings.Builder
	items.WriteString(titleStyle.Render("Your Order"))
	items.WriteString("\n\n")
	if len(lines) == 0 {
		items.WriteString(mutedStyle.Render("No items found."))
		items.WriteString("\n")
	}
	for i, line := range lines {
		cursor := "  "
		if i == v.cursor {
			cursor = "> "
		}
		qty := strconv.Itoa(line.Quantity)
		if v.editing && i == v.cursor {
			qty = v.qtyInput.View()
		}
		items.WriteString(fmt.Sprintf("%s%s\n", cursor, titleStyle.Render(line.Product.Name)))
		items.WriteString(fmt.Sprintf("  $%s · stock %d\n", line.Product.Price.StringFixed(2), line.Product.Stock))
		items.WriteString(fmt.Sprintf("  Quantity: %s\n\n", qty))
	}

	totals := pricing.Compute(lines)
	orderDate := time.Now().Format("January 2, 2006")

	var summary strings.Builder
	summary.WriteString(titleStyle.Render("Order Summary"))
	summary.WriteString("\n\n")
	summary.WriteString(fmt.Sprintf("Subtotal    $%s\n", totals.Subtotal.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Shipping    $%s\n", totals.Shipping.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Tax         $%s\n", totals.Tax.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Order Date  %s\n", orderDate))
	summary.WriteString("\n")
	summary.WriteString(amountStyle.Render(fmt.Sprintf("Total       $%s", totals.Total.StringFixed(2))))
	summary.WriteString("\n\n")
	summary.WriteString(okStyle.Render("p · Place the order"))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(items.String()),
		panelStyle.Width(summaryWidth).Render(summary.String()),
	)

	var footer string
	if line := v.app.busyLine("Placing order..."); line != "" {
		footer = line
	} else if status := v.app.statusLine(); status != "" {
		footer = status
	} else if v.editing {
		footer = mutedStyle.Render("enter: confirm quantity · esc: cancel")
	} else {
		footer = mutedStyle.Render("↑/↓: move · +/-: quantity · e: edit quantity · p: place order · esc: back")
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
