package handlers

import (
	"net/http"

	"signup_portal/internal/models"

	"github.com/gin-gonic/gin"
)

// render pops the pending flashes and renders page with them.
func (h *Handler) render(c *gin.Context, page, title string, extra gin.H) {
	g := h.sessions.From(c)
	msgs := g.Flashes()
	if len(msgs) > 0 {
		if err := g.Save(); err != nil && h.log != nil {
			h.log.Errorw("session_save_failed", "err", err, "page", page)
		}
	}

	data := gin.H{"title": title, "messages": msgs}
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(http.StatusOK, page, data)
}

func (h *Handler) home(c *gin.Context) {
	var user *models.SessionUser
	if u, ok := h.sessions.From(c).User(); ok {
		user = &u
	}
	h.render(c, "index.html", "Home", gin.H{"user": user})
}

func (h *Handler) signUpPage(c *gin.Context) {
	h.render(c, "signup.html", "Sign up", nil)
}

func (h *Handler) loginPage(c *gin.Context) {
	h.render(c, "login.html", "Log in", nil)
}
