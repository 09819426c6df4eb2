package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahbubzaman/gobazaar/app/cart"
)

func newTestStore() *CookieSessionStore {
	return NewCookieSessionStore(
		securecookie.GenerateRandomKey(64),
		securecookie.GenerateRandomKey(32),
	)
}

// carryCookies copies the Set-Cookie output of one response onto the next
// request, the way a browser would.
func carryCookies(w *httptest.ResponseRecorder, r *http.Request) {
	for _, cookie := range w.Result().Cookies() {
		r.AddCookie(cookie)
	}
}

func TestCartRoundTrip(t *testing.T) {
	store := newTestStore()

	c := cart.New()
	c.AddItem("prod-1", "Mouse", decimal.NewFromInt(500), "/images/mouse.jpg", 2)
	c.AddItem("prod-2", "Keyboard", decimal.NewFromInt(1200), "", 1)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/cart/add", nil)
	require.NoError(t, store.SaveCart(w, r, c))

	next := httptest.NewRequest("GET", "/cart", nil)
	carryCookies(w, next)

	restored := store.GetCart(next)
	require.Len(t, restored.Items, 2)
	assert.Equal(t, 3, restored.TotalItems())
	assert.True(t, restored.TotalPrice().Equal(decimal.NewFromInt(2200)))
	assert.True(t, restored.Items[0].Price.Equal(decimal.NewFromInt(500)))
}

func TestGetCartWithoutCookie(t *testing.T) {
	store := newTestStore()

	c := store.GetCart(httptest.NewRequest("GET", "/cart", nil))
	require.NotNil(t, c)
	assert.True(t, c.IsEmpty())
}

func TestGetCartIgnoresForeignCookie(t *testing.T) {
	writer := newTestStore()
	reader := newTestStore()

	c := cart.New()
	c.AddItem("prod-1", "Mouse", decimal.NewFromInt(500), "", 1)

	w := httptest.NewRecorder()
	require.NoError(t, writer.SaveCart(w, httptest.NewRequest("POST", "/cart/add", nil), c))

	// different keys cannot decode the cookie, so the cart comes back empty
	next := httptest.NewRequest("GET", "/cart", nil)
	carryCookies(w, next)

	assert.True(t, reader.GetCart(next).IsEmpty())
}

func TestClearCart(t *testing.T) {
	store := newTestStore()

	c := cart.New()
	c.AddItem("prod-1", "Mouse", decimal.NewFromInt(500), "", 1)

	w := httptest.NewRecorder()
	require.NoError(t, store.SaveCart(w, httptest.NewRequest("POST", "/cart/add", nil), c))

	clearReq := httptest.NewRequest("POST", "/cart/clear", nil)
	carryCookies(w, clearReq)
	clearRec := httptest.NewRecorder()
	require.NoError(t, store.ClearCart(clearRec, clearReq))

	next := httptest.NewRequest("GET", "/cart", nil)
	carryCookies(clearRec, next)
	assert.True(t, store.GetCart(next).IsEmpty())
}

func TestUserIDRoundTrip(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	require.NoError(t, store.SetUserID(w, httptest.NewRequest("POST", "/auth/session", nil), "user-42"))

	next := httptest.NewRequest("GET", "/", nil)
	carryCookies(w, next)
	assert.Equal(t, "user-42", store.GetUserID(next))

	assert.Empty(t, store.GetUserID(httptest.NewRequest("GET", "/", nil)))
}
