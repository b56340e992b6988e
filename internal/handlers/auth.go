package handlers

import (
	"net/http"

	"signup_portal/internal/service"
	"signup_portal/internal/session"

	"github.com/gin-gonic/gin"
)

// Flash texts for successful transitions.
const (
	msgSignUpOK = "Signup successful! You can log in now."
	msgLoginOK  = "Login successful!"
	msgLogoutOK = "Logout successful!"
)

type signUpForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

type signInForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// redirectWithFlash queues msg, saves the session and redirects. A session
// that cannot be saved only costs the message, never the redirect.
func (h *Handler) redirectWithFlash(c *gin.Context, g *session.Gateway, location, msg string) {
	if msg != "" {
		if err := g.FlashAndSave(msg); err != nil && h.log != nil {
			h.log.Errorw("session_save_failed", "err", err, "location", location)
		}
	}
	c.Redirect(http.StatusFound, location)
}

// logFailure logs infrastructure failures; user-correctable ones stay at info.
func (h *Handler) logFailure(event string, err error, kv ...interface{}) {
	if h.log == nil {
		return
	}
	fields := append([]interface{}{"err", err, "kind", service.KindOf(err).String()}, kv...)
	switch service.KindOf(err) {
	case service.KindStore, service.KindSession, service.KindUnknown:
		h.log.Errorw(event, fields...)
	default:
		h.log.Infow(event, fields...)
	}
}

func (h *Handler) signUp(c *gin.Context) {
	g := h.sessions.From(c)

	var form signUpForm
	if err := c.ShouldBind(&form); err != nil {
		h.logFailure("auth_bad_request_body", err)
		h.redirectWithFlash(c, g, "/signup", service.MsgSignUpError)
		return
	}

	_, err := h.services.SignUp(c.Request.Context(), service.SignupInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		recordAuth(opSignUp, err)
		h.logFailure("auth_sign_up_failed", err, "username", form.Username)
		h.redirectWithFlash(c, g, "/signup", service.UserMessage(err, service.MsgSignUpError))
		return
	}

	recordAuth(opSignUp, nil)
	if h.log != nil {
		h.log.Infow("auth_signed_up", "username", form.Username)
	}
	h.redirectWithFlash(c, g, "/login", msgSignUpOK)
}

func (h *Handler) signIn(c *gin.Context) {
	g := h.sessions.From(c)

	var form signInForm
	if err := c.ShouldBind(&form); err != nil {
		h.logFailure("auth_bad_request_body", err)
		h.redirectWithFlash(c, g, "/login", service.MsgLoginStoreError)
		return
	}

	prev, hadUser := g.User()
	u, err := h.services.Login(c.Request.Context(), g, form.Username, form.Password)
	if err != nil {
		recordAuth(opLogin, err)
		h.logFailure("auth_sign_in_failed", err, "username", form.Username)
		h.redirectWithFlash(c, g, "/login", service.UserMessage(err, service.MsgLoginStoreError))
		return
	}

	recordAuth(opLogin, nil)
	if h.log != nil {
		if hadUser && prev.ID != u.ID {
			h.log.Infow("auth_session_rebound", "from", prev.Username, "to", u.Username)
		}
		h.log.Infow("auth_signed_in", "username", u.Username)
	}
	h.redirectWithFlash(c, g, "/", msgLoginOK)
}

// logout is best-effort: whatever happens the user lands on the home page
// without a bound session.
func (h *Handler) logout(c *gin.Context) {
	g := h.sessions.From(c)

	if err := h.services.Logout(c.Request.Context(), g); err != nil {
		recordAuth(opLogout, err)
		h.logFailure("auth_logout_failed", err)
		h.sessions.Expire(c)
		c.Redirect(http.StatusFound, "/")
		return
	}

	recordAuth(opLogout, nil)
	h.redirectWithFlash(c, g, "/", msgLogoutOK)
}
