package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VanceeBassem/ecommerce-frontend/internal/catalog"
	"github.com/VanceeBassem/ecommerce-frontend/internal/pricing"
)

type browseFocus int

const (
	focusProducts browseFocus = iota
	focusFilters
)

// Filter cursor rows: price inputs first, then one row per category option.
const (
	filterRowMinPrice = 0
	filterRowMaxPrice = 1
	filterRowFirstCat = 2
)

// productItem implements list.Item for the catalog list. The description
// carries the in-cart quantity, so the list is rebuilt after cart mutations.
type productItem struct {
	product catalog.Product
	inCart  int
}

func (i productItem) Title() string {
	return fmt.Sprintf("%s  $%s", i.product.Name, i.product.Price.StringFixed(2))
}

func (i productItem) Description() string {
	desc := fmt.Sprintf("%s · stock %d", i.product.Category, i.product.Stock)
	if i.inCart > 0 {
		desc += fmt.Sprintf(" · in cart: %d", i.inCart)
	}
	return desc
}

func (i productItem) FilterValue() string { return i.product.Name }

// browseView is the product listing: filter sidebar, catalog list and the
// order summary with the running total.
type browseView struct {
	app         *App
	productList list.Model
	minInput    textinput.Model
	maxInput    textinput.Model
	focus       browseFocus
	filterRow   int

	width  int
	height int
}

func newBrowseView(app *App) *browseView {
	productList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	productList.Title = "Casual"
	productList.SetShowStatusBar(false)
	productList.SetFilteringEnabled(false)
	productList.SetShowHelp(false)
	productList.DisableQuitKeybindings()

	minInput := textinput.New()
	minInput.Prompt = "Min $ "
	minInput.CharLimit = 3
	minInput.SetValue(strconv.Itoa(catalog.PriceFloor))

	maxInput := textinput.New()
	maxInput.Prompt = "Max $ "
	maxInput.CharLimit = 3
	maxInput.SetValue(strconv.Itoa(catalog.PriceCeiling))

	return &browseView{
		app:         app,
		productList: productList,
		minInput:    minInput,
		maxInput:    maxInput,
	}
}

func (v *browseView) resize(width, height int) {
	v.width = width
	v.height = height
	// Sidebar and summary take fixed columns; the list gets the rest.
	listWidth := width - sidebarWidth - summaryWidth - 8
	if listWidth < 20 {
		listWidth = 20
	}
	listHeight := height - 6
	if listHeight < 5 {
		listHeight = 5
	}
	v.productList.SetSize(listWidth, listHeight)
}

const (
	sidebarWidth = 24
	summaryWidth = 32
)

func (v *browseView) setProducts(products []catalog.Product) {
	items := make([]list.Item, 0, len(products))
	for _, p := range products {
		items = append(items, productItem{product: p, inCart: v.app.cart.Quantity(p.ID)})
	}
	v.productList.SetItems(items)
}

// refreshItems re-renders in-cart quantities without losing the selection.
func (v *browseView) refreshItems() {
	selected := v.productList.Index()
	v.setProducts(v.app.products)
	v.productList.Select(selected)
}

func (v *browseView) selectedProduct() (catalog.Product, bool) {
	item, ok := v.productList.SelectedItem().(productItem)
	if !ok {
		return catalog.Product{}, false
	}
	return item.product, true
}

func (v *browseView) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		v.productList, cmd = v.productList.Update(msg)
		return cmd
	}

	if key.String() == "tab" {
		return v.toggleFocus()
	}

	if v.focus == focusFilters {
		return v.updateFilters(key)
	}
	return v.updateProducts(key)
}

func (v *browseView) toggleFocus() tea.Cmd {
	if v.focus == focusProducts {
		v.focus = focusFilters
		v.filterRow = filterRowMinPrice
		return v.syncFilterInputs()
	}
	v.focus = focusProducts
	v.minInput.Blur()
	v.maxInput.Blur()
	return nil
}

func (v *browseView) updateProducts(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "+", "enter", " ":
		if p, ok := v.selectedProduct(); ok {
			v.app.cart.Add(p)
			v.refreshItems()
		}
		return nil
	case "-":
		if p, ok := v.selectedProduct(); ok {
			v.app.cart.Remove(p)
			v.refreshItems()
		}
		return nil
	case "c":
		// Checkout is disabled while the cart is empty.
		if v.app.cart.IsEmpty() || v.app.busy {
			return nil
		}
		v.app.order.enter()
		v.app.state = stateOrderDetails
		return nil
	case "r":
		if v.app.busy {
			return nil
		}
		return v.app.startRequest(v.app.fetchCatalogCmd())
	case "ctrl+x":
		if v.app.busy {
			return nil
		}
		return v.app.startRequest(v.app.logoutCmd())
	}

	var cmd tea.Cmd
	v.productList, cmd = v.productList.Update(key)
	return cmd
}

func (v *browseView) updateFilters(key tea.KeyMsg) tea.Cmd {
	lastRow := filterRowFirstCat + len(catalog.CategoryOptions()) - 1
	switch key.String() {
	case "up":
		if v.filterRow > 0 {
			v.filterRow--
		}
		return v.syncFilterInputs()
	case "down":
		if v.filterRow < lastRow {
			v.filterRow++
		}
		return v.syncFilterInputs()
	case " ":
		if v.filterRow >= filterRowFirstCat {
			opt := catalog.CategoryOptions()[v.filterRow-filterRowFirstCat]
			v.app.filter.ToggleCategory(opt.Code)
			return nil
		}
	case "enter":
		return v.applyFilters()
	case "ctrl+r":
		v.app.filter.Reset()
		v.resetFilterInputs()
		return nil
	}

	var cmd tea.Cmd
	switch v.filterRow {
	case filterRowMinPrice:
		v.minInput, cmd = v.minInput.Update(key)
	case filterRowMaxPrice:
		v.maxInput, cmd = v.maxInput.Update(key)
	}
	return cmd
}

// resetFilterInputs puts the price inputs back to the slider bounds, used by
// the clear-filters key and after logout.
func (v *browseView) resetFilterInputs() {
	v.minInput.SetValue(strconv.Itoa(catalog.PriceFloor))
	v.maxInput.SetValue(strconv.Itoa(catalog.PriceCeiling))
}

func (v *browseView) syncFilterInputs() tea.Cmd {
	v.minInput.Blur()
	v.maxInput.Blur()
	switch v.filterRow {
	case filterRowMinPrice:
		return v.minInput.Focus()
	case filterRowMaxPrice:
		return v.maxInput.Focus()
	}
	return nil
}

// applyFilters validates the price inputs, stores them in the filter state
// and refetches the catalog. Invalid input keeps the previous range.
func (v *browseView) applyFilters() tea.Cmd {
	if v.app.busy {
		return nil
	}
	min, errMin := strconv.Atoi(strings.TrimSpace(v.minInput.Value()))
	max, errMax := strconv.Atoi(strings.TrimSpace(v.maxInput.Value()))
	if errMin != nil || errMax != nil || v.app.filter.SetPriceRange(min, max) != nil {
		v.app.statusMsg = "Invalid price range"
		v.minInput.SetValue(strconv.Itoa(v.app.filter.MinPrice))
		v.maxInput.SetValue(strconv.Itoa(v.app.filter.MaxPrice))
		return nil
	}
	v.app.statusMsg = ""
	return v.app.startRequest(v.app.fetchCatalogCmd())
}

func (v *browseView) view() string {
	sidebar := v.filterSidebar()
	summary := v.orderSummary()
	catalogPanel := panelStyle.Render(v.productList.View())
	if v.focus == focusProducts {
		catalogPanel = focusStyle.Render(v.productList.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, catalogPanel, summary)

	var footer string
	if line := v.app.busyLine("Loading..."); line != "" {
		footer = line
	} else if status := v.app.statusLine(); status != "" {
		footer = status
	} else if v.focus == focusFilters {
		footer = mutedStyle.Render("↑/↓: move · space: toggle category · enter: apply filter · ctrl+r: clear filters · tab: products")
	} else {
		footer = mutedStyle.Render("↑/↓: move · +/-: cart · c: checkout · r: refresh · tab: filters · ctrl+x: logout")
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (v *browseView) filterSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filters"))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Price"))
	b.WriteString("\n")
	b.WriteString(v.filterRowLine(filterRowMinPrice, v.minInput.View()))
	b.WriteString("\n")
	b.WriteString(v.filterRowLine(filterRowMaxPrice, v.maxInput.View()))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Category"))
	b.WriteString("\n")
	for i, opt := range catalog.CategoryOptions() {
		mark := "[ ]"
		if v.app.filter.Selected(opt.Code) {
			mark = "[x]"
		}
		b.WriteString(v.filterRowLine(filterRowFirstCat+i, fmt.Sprintf("%s %s", mark, opt.Label)))
		b.WriteString("\n")
	}

	style := panelStyle
	if v.focus == focusFilters {
		style = focusStyle
	}
	return style.Width(sidebarWidth).Render(b.String())
}

func (v *browseView) filterRowLine(row int, content string) string {
	if v.focus == focusFilters && v.filterRow == row {
		return "> " + content
	}
	return "  " + content
}

// orderSummary renders the cart with per-line subtotals and the running
// total. Shipping and tax only appear on the order details screen.
func (v *browseView) orderSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Order Summary"))
	b.WriteString("\n\n")

	lines := v.app.cart.Lines()
	if len(lines) == 0 {
		b.WriteString(mutedStyle.Render("No items selected"))
		b.WriteString("\n")
	} else {
		for _, line := range lines {
			b.WriteString(line.Product.Name)
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(fmt.Sprintf("%d × $%s", line.Quantity, line.Product.Price.StringFixed(2))))
			b.WriteString("  ")
			b.WriteString(amountStyle.Render("$" + line.Subtotal().StringFixed(2)))
			b.WriteString("\n")
		}
	}

	totals := pricing.Compute(lines)
	b.WriteString("\n")
	b.WriteString(amountStyle.Render("Total: $" + totals.Subtotal.StringFixed(2)))
	b.WriteString("\n\n")
	if v.app.cart.IsEmpty() {
		b.WriteString(mutedStyle.Render("Proceed to Checkout"))
	} else {
		b.WriteString(okStyle.Render("c · Proceed to Checkout"))
	}
	return panelStyle.Width(summaryWidth).Render(b.String())
}
