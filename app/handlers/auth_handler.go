package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/unrolled/render"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/services"
	"github.com/mahbubzaman/gobazaar/app/utils/sessions"
)

type AuthHandler struct {
	identitySvc  *services.IdentityService
	sessionStore sessions.SessionStore
	render       *render.Render
}

func NewAuthHandler(identitySvc *services.IdentityService, sessionStore sessions.SessionStore, render *render.Render) *AuthHandler {
	return &AuthHandler{
		identitySvc:  identitySvc,
		sessionStore: sessionStore,
		render:       render,
	}
}

// CreateSession exchanges a provider-issued identity token for a session.
// The local profile is upserted on every sign-in.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"idToken"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.identitySvc.SignIn(r.Context(), req.IDToken)
	if err != nil {
		log.Printf("AuthHandler.CreateSession: sign-in failed: %v", err)
		http.Error(w, "Invalid identity token", http.StatusUnauthorized)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.CreateSession: failed to set session for user %s: %v", user.ID, err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         "Admin Login",
		"MessageStatus": r.URL.Query().Get("status"),
		"Message":       r.URL.Query().Get("message"),
	})
	_ = h.render.HTML(w, http.StatusOK, "admin/login", data)
}

func (h *AuthHandler) AdminLoginPost(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.identitySvc.AdminLogin(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("AuthHandler.AdminLoginPost: login failed for %s: %v", email, err)
		}
		http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("Invalid email or password."), http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.AdminLoginPost: failed to set session for %s: %v", user.ID, err)
		http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("Failed to create session."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}
