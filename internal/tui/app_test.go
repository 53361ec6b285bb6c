package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/VanceeBassem/ecommerce-frontend/internal/api"
	"github.com/VanceeBassem/ecommerce-frontend/internal/catalog"
	"github.com/VanceeBassem/ecommerce-frontend/internal/config"
	"github.com/VanceeBassem/ecommerce-frontend/internal/session"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	baseDir := t.TempDir()
	if err := config.InitAppDir(baseDir); err != nil {
		t.Fatalf("init app dir: %v", err)
	}
	cfg, err := config.New(baseDir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	client := api.NewClient(cfg.BaseURL())
	sess := session.NewManager(client, cfg.TokenPath())
	return NewApp(cfg, nil, client, sess)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testProduct(id int, name, price string) catalog.Product {
	return catalog.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), Category: "polo", Stock: 25}
}

func TestLoginSuccessMovesToBrowseAndFetches(t *testing.T) {
	app := newTestApp(t)
	if app.state != stateLogin {
		t.Fatalf("fresh app must start on the login screen")
	}
	model, cmd := app.Update(loginResultMsg{err: nil})
	app = model.(*App)
	if app.state != stateBrowse {
		t.Fatalf("login success must land on browse, got %d", app.state)
	}
	if cmd == nil {
		t.Fatalf("login success must trigger the initial catalog fetch")
	}
	if !app.busy {
		t.Fatalf("a fetch should be marked in flight")
	}
}

func TestLoginFailureShowsSingleNotification(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(loginResultMsg{err: api.ErrAuthentication})
	app = model.(*App)
	if app.state != stateLogin {
		t.Fatalf("failed login must stay on the login screen")
	}
	if app.statusMsg != "Login failed" {
		t.Fatalf("statusMsg = %q, want %q", app.statusMsg, "Login failed")
	}
}

func TestCatalogResponseReplacesProducts(t *testing.T) {
	app := newTestApp(t)
	app.state = stateBrowse
	app.products = []catalog.Product{testProduct(9, "Stale", "1.00")}

	fresh := []catalog.Product{testProduct(1, "Polo", "30.00"), testProduct(2, "Jeans", "55.00")}
	model, _ := app.Update(catalogMsg{products: fresh})
	app = model.(*App)
	if len(app.products) != 2 || app.products[0].Name != "Polo" {
		t.Fatalf("catalog must be replaced wholesale, got %v", app.products)
	}
}

func TestCatalogFailureSurfacesNotification(t *testing.T) {
	app := newTestApp(t)
	app.state = stateBrowse
	model, _ := app.Update(catalogMsg{err: errors.New("conn refused")})
	app = model.(*App)
	if app.statusMsg != "Failed to load products. Please try again." {
		t.Fatalf("statusMsg = %q", app.statusMsg)
	}
	if app.state != stateBrowse {
		t.Fatalf("a failed fetch must leave the user where they were")
	}
}

func TestOrderSuccessClearsCartAndConfirms(t *testing.T) {
	app := newTestApp(t)
	app.state = stateOrderDetails
	app.cart.Add(testProduct(1, "Polo", "30.00"))

	model, _ := app.Update(orderResultMsg{confirmation: api.OrderConfirmation{ID: 12}})
	app = model.(*App)
	if app.state != stateConfirmation {
		t.Fatalf("order success must show the confirmation screen, got %d", app.state)
	}
	if !app.cart.IsEmpty() {
		t.Fatalf("order success must clear the cart")
	}
	if app.confirmation.ID != 12 {
		t.Fatalf("confirmation id = %d, want 12", app.confirmation.ID)
	}
}

func TestOrderFailureKeepsCart(t *testing.T) {
	app := newTestApp(t)
	app.state = stateOrderDetails
	app.cart.Add(testProduct(1, "Polo", "30.00"))

	model, _ := app.Update(orderResultMsg{err: api.ErrOrderSubmission})
	app = model.(*App)
	if app.state != stateOrderDetails {
		t.Fatalf("a rejected order must stay on order details")
	}
	if app.cart.IsEmpty() {
		t.Fatalf("a rejected order must keep the cart for a manual retry")
	}
	if app.statusMsg != "Failed to place order. Please try again." {
		t.Fatalf("statusMsg = %q", app.statusMsg)
	}
}

func TestLogoutReturnsToLoginAndResets(t *testing.T) {
	app := newTestApp(t)
	app.state = stateBrowse
	app.cart.Add(testProduct(1, "Polo", "30.00"))
	app.filter.ToggleCategory("polo")
	app.products = []catalog.Product{testProduct(1, "Polo", "30.00")}

	model, _ := app.Update(logoutResultMsg{})
	app = model.(*App)
	if app.state != stateLogin {
		t.Fatalf("logout must return to the login screen")
	}
	if !app.cart.IsEmpty() {
		t.Fatalf("logout must clear the cart")
	}
	if len(app.filter.Categories()) != 0 {
		t.Fatalf("logout must reset the filter")
	}
	if app.products != nil {
		t.Fatalf("logout must drop the catalog")
	}
}

func TestCheckoutDisabledOnEmptyCart(t *testing.T) {
	app := newTestApp(t)
	app.state = stateBrowse
	model, _ := app.Update(keyMsg("c"))
	app = model.(*App)
	if app.state != stateBrowse {
		t.Fatalf("checkout with an empty cart must be ignored")
	}

	app.products = []catalog.Product{testProduct(1, "Polo", "30.00")}
	app.browse.setProducts(app.products)
	app.cart.Add(app.products[0])
	model, _ = app.Update(keyMsg("c"))
	app = model.(*App)
	if app.state != stateOrderDetails {
		t.Fatalf("checkout with a non-empty cart must open order details")
	}
}

func TestBrowseKeysMutateCart(t *testing.T) {
	app := newTestApp(t)
	app.state = stateBrowse
	app.products = []catalog.Product{testProduct(1, "Polo", "30.00")}
	app.browse.setProducts(app.products)

	model, _ := app.Update(keyMsg("+"))
	app = model.(*App)
	if got := app.cart.Quantity(1); got != 1 {
		t.Fatalf("quantity after + = %d, want 1", got)
	}
	model, _ = app.Update(keyMsg("-"))
	app = model.(*App)
	if got := app.cart.Quantity(1); got != 0 {
		t.Fatalf("quantity after - = %d, want 0", got)
	}
	// A second remove on the now-absent line stays a no-op.
	model, _ = app.Update(keyMsg("-"))
	app = model.(*App)
	if got := app.cart.Quantity(1); got != 0 {
		t.Fatalf("quantity = %d after removing absent product", got)
	}
}

func TestRestoredTokenSkipsLogin(t *testing.T) {
	baseDir := t.TempDir()
	if err := config.InitAppDir(baseDir); err != nil {
		t.Fatalf("init app dir: %v", err)
	}
	cfg, err := config.New(baseDir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.TokenPath()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("tok-restored\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	client := api.NewClient(cfg.BaseURL())
	sess := session.NewManager(client, cfg.TokenPath())
	if !sess.Restore() {
		t.Fatalf("expected token restore")
	}
	app := NewApp(cfg, nil, client, sess)
	if app.state != stateBrowse {
		t.Fatalf("restored token must skip the login form")
	}
	if cmd := app.Init(); cmd == nil {
		t.Fatalf("restored session must fetch the catalog on startup")
	}
}
