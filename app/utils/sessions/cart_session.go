package sessions

import (
	"encoding/gob"
	"log"
	"net/http"

	"github.com/mahbubzaman/gobazaar/app/cart"
)

func init() {
	gob.Register(cart.Cart{})
}

// GetCart reconstructs the session cart. Absence or a stale cookie that no
// longer decodes both yield an empty cart.
func (c *CookieSessionStore) GetCart(r *http.Request) *cart.Cart {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return cart.New()
	}

	stored, ok := session.Values[cartSessionKey].(cart.Cart)
	if !ok {
		return cart.New()
	}
	return &stored
}

func (c *CookieSessionStore) SaveCart(w http.ResponseWriter, r *http.Request, cartData *cart.Cart) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	session.Values[cartSessionKey] = *cartData
	if err := session.Save(r, w); err != nil {
		log.Printf("CookieSessionStore.SaveCart: error saving session: %v", err)
		return err
	}
	return nil
}

func (c *CookieSessionStore) ClearCart(w http.ResponseWriter, r *http.Request) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	delete(session.Values, cartSessionKey)
	return session.Save(r, w)
}
