// Package session adapts gin-contrib/sessions to the auth service's Session
// capability and carries the one-shot flash messages shown on the next page.
package session

import (
	"encoding/gob"
	"net/http"

	"signup_portal/internal/models"
	"signup_portal/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	userKey  = "user"
	flashKey = "info"
)

func init() {
	// session values are gob-encoded into the cookie
	gob.Register(models.SessionUser{})
}

// Config describes the session cookie.
type Config struct {
	Name   string
	Secret string
	MaxAge int // seconds
	Secure bool
}

// Manager owns the cookie store and hands out per-request Gateways.
type Manager struct {
	name  string
	store cookie.Store
	opts  sessions.Options
}

// NewManager builds a signed cookie store from cfg.
func NewManager(cfg Config) *Manager {
	opts := sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(opts)
	return &Manager{name: cfg.Name, store: store, opts: opts}
}

// Middleware attaches the session to every request.
func (m *Manager) Middleware() gin.HandlerFunc {
	return sessions.Sessions(m.name, m.store)
}

// From returns the Gateway for the current request. Middleware must run first.
func (m *Manager) From(c *gin.Context) *Gateway {
	return &Gateway{s: sessions.Default(c), opts: m.opts}
}

// Expire writes an already-expired session cookie, bypassing the store.
// Used when the store itself failed to destroy the session.
func (m *Manager) Expire(c *gin.Context) {
	c.SetSameSite(m.opts.SameSite)
	c.SetCookie(m.name, "", -1, m.opts.Path, m.opts.Domain, m.opts.Secure, m.opts.HttpOnly)
}

// Gateway is one request's session.
type Gateway struct {
	s    sessions.Session
	opts sessions.Options
}

var _ service.Session = (*Gateway)(nil)

func (g *Gateway) User() (models.SessionUser, bool) {
	u, ok := g.s.Get(userKey).(models.SessionUser)
	return u, ok
}

func (g *Gateway) SetUser(u models.SessionUser) {
	g.s.Set(userKey, u)
}

func (g *Gateway) Clear() {
	g.s.Clear()
}

func (g *Gateway) Save() error {
	return g.s.Save()
}

// Destroy clears the session and expires the cookie. Afterwards the gateway
// is usable again: a later Save starts a fresh session (e.g. to carry a flash).
func (g *Gateway) Destroy() error {
	g.s.Clear()
	g.s.Options(sessions.Options{
		Path:     g.opts.Path,
		Domain:   g.opts.Domain,
		MaxAge:   -1,
		Secure:   g.opts.Secure,
		HttpOnly: g.opts.HttpOnly,
		SameSite: g.opts.SameSite,
	})
	err := g.s.Save()
	g.s.Options(g.opts)
	return err
}
