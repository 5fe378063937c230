package controllers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Laib363/E-Commerce-Project/controllers"
	"github.com/Laib363/E-Commerce-Project/middleware"
	"github.com/Laib363/E-Commerce-Project/models"
	"github.com/Laib363/E-Commerce-Project/repository"
	"github.com/Laib363/E-Commerce-Project/routes"
	"github.com/Laib363/E-Commerce-Project/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type stubImageStore struct{}

func (stubImageStore) Upload(context.Context, []byte, string, string) (*services.UploadedImage, error) {
	return &services.UploadedImage{URL: "https://img.test/photo.png", Filename: "photo123"}, nil
}

func (stubImageStore) Delete(context.Context, string) error { return nil }

type testApp struct {
	server   *httptest.Server
	users    *repository.MemoryUserRepository
	listings *repository.MemoryListingRepository
	orders   *repository.MemoryOrderRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	listings := repository.NewMemoryListingRepository()
	orders := repository.NewMemoryOrderRepository()

	authService := services.NewAuthService(users)
	listingService := services.NewListingService(listings, users, stubImageStore{})
	cartService := services.NewCartService(users, listings)
	orderService := services.NewOrderService(orders, users, listings)

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("session", store))
	r.Use(middleware.CurrentUser(users))
	r.LoadHTMLGlob("../templates/*.html")

	routes.Register(r, routes.Deps{
		Auth:         controllers.NewAuthController(authService),
		Listings:     controllers.NewListingController(listingService),
		Cart:         controllers.NewCartController(cartService),
		Orders:       controllers.NewOrderController(orderService),
		ListingRepo:  listings,
		LoginLimiter: middleware.NewRateLimiter(rate.Inf, 1, time.Minute),
	})

	server := httptest.NewServer(middleware.MethodOverride(r))
	t.Cleanup(server.Close)
	return &testApp{server: server, users: users, listings: listings, orders: orders}
}

// newBrowser returns a cookie-keeping client that stops at redirects so
// tests can assert on Location headers.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) postForm(t *testing.T, c *http.Client, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func (a *testApp) getPage(t *testing.T, c *http.Client, path string) (int, string) {
	t.Helper()
	resp, err := c.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (a *testApp) register(t *testing.T, c *http.Client, username, email string) {
	t.Helper()
	resp := a.postForm(t, c, "/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {"s3cret-pass"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/listings", resp.Header.Get("Location"))
}

func location(resp *http.Response) string {
	return resp.Header.Get("Location")
}

func TestGuardsRedirectUnauthenticated(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)

	for _, path := range []string{"/cart", "/listings/new", "/my-orders"} {
		resp, err := browser.Get(app.server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", location(resp), path)
	}

	resp := app.postForm(t, browser, "/orders/checkout", url.Values{})
	assert.Equal(t, "/login", location(resp))

	// The flashed guard message shows up on the login page.
	_, body := app.getPage(t, browser, "/login")
	assert.Contains(t, body, "You must be logged in")
}

func TestRegisterLoginLogout(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)

	app.register(t, browser, "alice", "alice@example.com")
	_, body := app.getPage(t, browser, "/listings")
	assert.Contains(t, body, "Welcome! You are now logged in.")

	// Duplicate registrations re-show the form with the reason.
	fresh := newBrowser(t)
	resp := app.postForm(t, fresh, "/register", url.Values{
		"username": {"alice"},
		"email":    {"other@example.com"},
		"password": {"whatever"},
	})
	assert.Equal(t, "/register", location(resp))
	_, body = app.getPage(t, fresh, "/register")
	assert.Contains(t, body, "already exists")

	resp, err := browser.Get(app.server.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/listings", location(resp))

	resp = app.postForm(t, browser, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	assert.Equal(t, "/login", location(resp))
	_, body = app.getPage(t, browser, "/login")
	assert.Contains(t, body, "Invalid username or password")

	resp = app.postForm(t, browser, "/login", url.Values{
		"username": {"alice"},
		"password": {"s3cret-pass"},
	})
	assert.Equal(t, "/listings", location(resp))
	_, body = app.getPage(t, browser, "/listings")
	assert.Contains(t, body, "Welcome back!")
}

func TestStorefrontScenario(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	// Seller A creates a listing priced 50.
	alice := newBrowser(t)
	app.register(t, alice, "alice", "alice@example.com")
	resp := app.postForm(t, alice, "/listings", url.Values{
		"title":       {"Widget"},
		"description": {"A fine widget"},
		"price":       {"50"},
	})
	require.Equal(t, "/listings", location(resp))

	all, err := app.listings.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	widget := all[0]
	assert.Equal(t, models.DefaultImageURL, widget.Image.URL)

	// Buyer B adds it to the cart; re-adding flashes, not duplicates.
	bob := newBrowser(t)
	app.register(t, bob, "bob", "bob@example.com")

	resp = app.postForm(t, bob, "/cart/add/"+widget.ID.Hex(), url.Values{})
	assert.Equal(t, "/listings/"+widget.ID.Hex(), location(resp))

	resp = app.postForm(t, bob, "/cart/add/"+widget.ID.Hex(), url.Values{})
	_, body := app.getPage(t, bob, location(resp))
	assert.Contains(t, body, "Item is already in your cart.")

	bobUser, err := app.users.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobUser.Cart, 1)

	// B checks out.
	resp = app.postForm(t, bob, "/orders/checkout", url.Values{})
	assert.Equal(t, "/my-orders", location(resp))

	placed, err := app.orders.FindByCustomer(ctx, bobUser.ID)
	require.NoError(t, err)
	require.Len(t, placed, 1)
	order := placed[0]
	assert.InDelta(t, 50, order.TotalAmount, 1e-9)
	assert.Equal(t, []string{widget.ID.Hex()}, []string{order.Items[0].Hex()})

	bobUser, err = app.users.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobUser.Cart, "checkout empties the cart")

	_, body = app.getPage(t, bob, "/my-orders")
	assert.Contains(t, body, order.OrderID)

	// A is not the customer and may not view B's order.
	resp2, err := alice.Get(app.server.URL + "/orders/" + order.ID.Hex())
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, "/my-orders", location(resp2))
	_, body = app.getPage(t, alice, "/my-orders")
	assert.Contains(t, body, "You are not authorized to view this order.")

	// B is not the author and may not delete A's listing.
	resp = app.postForm(t, bob, "/listings/"+widget.ID.Hex()+"?_method=DELETE", url.Values{})
	assert.Equal(t, "/listings/"+widget.ID.Hex(), location(resp))
	_, err = app.listings.FindByID(ctx, widget.ID)
	assert.NoError(t, err, "listing survives a non-author delete")

	// A deletes the listing through the method-override form.
	resp = app.postForm(t, alice, "/listings/"+widget.ID.Hex()+"?_method=DELETE", url.Values{})
	assert.Equal(t, "/listings", location(resp))
	_, err = app.listings.FindByID(ctx, widget.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Checkout on the now-empty cart never creates an order.
	resp = app.postForm(t, bob, "/orders/checkout", url.Values{})
	assert.Equal(t, "/cart", location(resp))
	_, body = app.getPage(t, bob, "/cart")
	assert.Contains(t, body, "Your cart is empty.")

	placed, err = app.orders.FindByCustomer(ctx, bobUser.ID)
	require.NoError(t, err)
	assert.Len(t, placed, 1)
}

func TestOrderNotFoundMessageDiffersFromUnauthorized(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)
	app.register(t, browser, "alice", "alice@example.com")

	// Guessing a non-existent order id lands on the same page with the
	// not-found message.
	resp, err := browser.Get(app.server.URL + "/orders/aaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/my-orders", location(resp))
	_, body := app.getPage(t, browser, "/my-orders")
	assert.Contains(t, body, "Order not found.")

	// A malformed id is invalid input, not a crash.
	resp, err = browser.Get(app.server.URL + "/orders/not-a-hex-id")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/my-orders", location(resp))
	_, body = app.getPage(t, browser, "/my-orders")
	assert.Contains(t, body, "Invalid order ID.")
}

func TestAuthorGuardOnMissingListing(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)
	app.register(t, browser, "alice", "alice@example.com")

	// Editing a listing that does not exist is a clean not-found redirect.
	resp, err := browser.Get(app.server.URL + "/listings/aaaaaaaaaaaaaaaaaaaaaaaa/edit")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/listings", location(resp))
	_, body := app.getPage(t, browser, "/listings")
	assert.Contains(t, body, "Listing not found")
}

func TestListingValidation(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)
	app.register(t, browser, "alice", "alice@example.com")

	resp := app.postForm(t, browser, "/listings", url.Values{
		"title": {"Widget"},
		"price": {"-3"},
	})
	assert.Equal(t, "/listings/new", location(resp))
	_, body := app.getPage(t, browser, "/listings/new")
	assert.Contains(t, body, "Price must be a non-negative number")

	resp = app.postForm(t, browser, "/listings", url.Values{
		"title": {"   "},
		"price": {"3"},
	})
	assert.Equal(t, "/listings/new", location(resp))
	_, body = app.getPage(t, browser, "/listings/new")
	assert.Contains(t, body, "Title is required")

	all, err := app.listings.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
