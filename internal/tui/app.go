// internal/tui/app.go
//
// This is the main TUI for the storefront client. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// All cart, filter and session mutation happens synchronously inside Update,
// so no two operations ever race. Network calls run as tea.Cmds whose results
// come back as messages; an in-flight request is never cancelled by a
// superseding action, its result simply arrives later.

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VanceeBassem/ecommerce-frontend/internal/api"
	"github.com/VanceeBassem/ecommerce-frontend/internal/cart"
	"github.com/VanceeBassem/ecommerce-frontend/internal/catalog"
	"github.com/VanceeBassem/ecommerce-frontend/internal/config"
	"github.com/VanceeBassem/ecommerce-frontend/internal/logging"
	"github.com/VanceeBassem/ecommerce-frontend/internal/session"
)

// appState represents which "screen" we're on
type appState int

const (
	stateLogin        appState = iota // Email/password form
	stateBrowse                       // Product listing with filters and cart summary
	stateOrderDetails                 // Editable order with the totals breakdown
	stateConfirmation                 // Post-checkout confirmation
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	amountStyle = lipgloss.NewStyle().Bold(true)
)

// Result messages delivered by network commands.
type loginResultMsg struct {
	err error
}

type catalogMsg struct {
	products []catalog.Product
	err      error
}

type orderResultMsg struct {
	confirmation api.OrderConfirmation
	err          error
}

type logoutResultMsg struct {
	err error
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	logger  *logging.Logger
	client  *api.Client
	session *session.Manager

	cart     *cart.Store
	filter   catalog.FilterState
	products []catalog.Product

	loginView *loginView
	browse    *browseView
	order     *orderView

	confirmation api.OrderConfirmation

	// busy is true while a network request is in flight; the views show a
	// progress indicator and ignore submit keys until the result arrives.
	busy      bool
	spinner   spinner.Model
	statusMsg string

	width  int
	height int
}

// NewApp creates the application model. When the session manager restored a
// persisted token the app skips the login form and loads the catalog
// directly; the user identity stays unknown until the next fresh login.
func NewApp(cfg *config.Config, logger *logging.Logger, client *api.Client, sess *session.Manager) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))

	app := &App{
		state:   stateLogin,
		config:  cfg,
		logger:  logger,
		client:  client,
		session: sess,
		cart:    cart.New(),
		filter:  catalog.NewFilterState(),
		spinner: sp,
	}
	app.loginView = newLoginView(app)
	app.browse = newBrowseView(app)
	app.order = newOrderView(app)
	if sess.Authenticated() {
		app.state = stateBrowse
	}
	return app
}

// Init kicks off the initial catalog fetch when a token was restored.
func (a *App) Init() tea.Cmd {
	if a.state == stateBrowse {
		return a.startRequest(a.fetchCatalogCmd())
	}
	return a.loginView.focusCmd()
}

// startRequest marks a network call as in flight and keeps the progress
// indicator animated until its result message lands.
func (a *App) startRequest(cmd tea.Cmd) tea.Cmd {
	a.busy = true
	return tea.Batch(cmd, a.spinner.Tick)
}

// Update routes messages to the active screen after handling the ones that
// matter everywhere.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.browse.resize(m.Width, m.Height)
		return a, nil
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case loginResultMsg:
		a.busy = false
		if m.err != nil {
			a.logger.Error("tui: login failed: %v", m.err)
			a.statusMsg = "Login failed"
			return a, nil
		}
		a.statusMsg = ""
		a.state = stateBrowse
		return a, a.startRequest(a.fetchCatalogCmd())
	case catalogMsg:
		a.busy = false
		if m.err != nil {
			a.logger.Error("tui: catalog fetch failed: %v", m.err)
			a.statusMsg = "Failed to load products. Please try again."
			return a, nil
		}
		a.statusMsg = ""
		// The response replaces the catalog wholesale.
		a.products = m.products
		a.browse.setProducts(m.products)
		return a, nil
	case orderResultMsg:
		a.busy = false
		if m.err != nil {
			a.logger.Error("tui: order submission failed: %v", m.err)
			a.statusMsg = "Failed to place order. Please try again."
			return a, nil
		}
		a.statusMsg = ""
		a.confirmation = m.confirmation
		a.cart.Clear()
		a.state = stateConfirmation
		return a, nil
	case logoutResultMsg:
		a.busy = false
		if m.err != nil {
			// The local session is already cleared; the failure is only
			// worth a diagnostic line.
			a.logger.Warn("tui: server-side logout failed: %v", m.err)
		}
		a.cart.Clear()
		a.filter.Reset()
		a.products = nil
		a.browse.setProducts(nil)
		a.browse.resetFilterInputs()
		a.loginView.reset()
		a.state = stateLogin
		a.statusMsg = ""
		return a, nil
	}

	switch a.state {
	case stateLogin:
		return a, a.loginView.update(msg)
	case stateBrowse:
		return a, a.browse.update(msg)
	case stateOrderDetails:
		return a, a.order.update(msg)
	case stateConfirmation:
		return a, a.updateConfirmation(msg)
	}
	return a, nil
}

// View renders the active screen.
func (a *App) View() string {
	switch a.state {
	case stateLogin:
		return a.loginView.view()
	case stateBrowse:
		return a.browse.view()
	case stateOrderDetails:
		return a.order.view()
	case stateConfirmation:
		return a.confirmationView()
	}
	return ""
}

// Network commands. Each snapshots the state it needs before going
// asynchronous so a later mutation cannot leak into an in-flight request.

func (a *App) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		err := a.session.Login(context.Background(), email, password)
		return loginResultMsg{err: err}
	}
}

func (a *App) fetchCatalogCmd() tea.Cmd {
	filter := a.filter.Clone()
	token := a.session.Token()
	return func() tea.Msg {
		products, err := a.client.FetchProducts(context.Background(), filter, token)
		return catalogMsg{products: products, err: err}
	}
}

func (a *App) submitOrderCmd() tea.Cmd {
	lines := a.cart.Lines()
	token := a.session.Token()
	return func() tea.Msg {
		confirmation, err := a.client.SubmitOrder(context.Background(), lines, token)
		return orderResultMsg{confirmation: confirmation, err: err}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		err := a.session.Logout(context.Background())
		return logoutResultMsg{err: err}
	}
}

func (a *App) statusLine() string {
	if a.statusMsg == "" {
		return ""
	}
	return errorStyle.Render(a.statusMsg)
}

func (a *App) busyLine(label string) string {
	if !a.busy {
		return ""
	}
	return a.spinner.View() + " " + mutedStyle.Render(label)
}
