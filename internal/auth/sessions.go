// Package auth holds the cookie-session login state for the admin
// interface.
package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const userKey = "admin_username"

// Manager wraps the gorilla cookie store carrying the admin login flag.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

func NewManager(secret []byte, cookieName string) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: cookieName}
}

func (m *Manager) LogIn(w http.ResponseWriter, r *http.Request, username string) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[userKey] = username
	return sess.Save(r, w)
}

func (m *Manager) LogOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	delete(sess.Values, userKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Username returns the logged-in admin name, if any. A cookie that
// fails to decode counts as not logged in.
func (m *Manager) Username(r *http.Request) (string, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return "", false
	}
	name, ok := sess.Values[userKey].(string)
	return name, ok && name != ""
}
