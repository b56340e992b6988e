package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"signup_portal/internal/models"
	"signup_portal/internal/service"
	"signup_portal/internal/session"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser *models.User
	signUpErr  error
	loginUser  *models.User
	loginErr   error
	logoutErr  error

	lastSignUp        service.SignupInput
	lastLoginUsername string
	lastLoginPassword string
	signUpCalls       int
	logoutCalls       int
}

func (m *mockAuth) SignUp(_ context.Context, in service.SignupInput) (*models.User, error) {
	m.signUpCalls++
	m.lastSignUp = in
	return m.signUpUser, m.signUpErr
}

// Login mimics the real service: it binds the user to the session on success.
func (m *mockAuth) Login(_ context.Context, sess service.Session, username, password string) (*models.User, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	sess.Clear()
	sess.SetUser(m.loginUser.SessionView())
	if err := sess.Save(); err != nil {
		return nil, err
	}
	return m.loginUser, nil
}

func (m *mockAuth) Logout(_ context.Context, sess service.Session) error {
	m.logoutCalls++
	if m.logoutErr != nil {
		return m.logoutErr
	}
	return sess.Destroy()
}

// ---- Shared Test Helpers ----

const testCookieName = "test_session"

func newTestSessions() *session.Manager {
	return session.NewManager(session.Config{
		Name:   testCookieName,
		Secret: "0123456789abcdef0123456789abcdef",
		MaxAge: 3600,
	})
}

func newTestRouterWith(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, newTestSessions(), nil)
	r, err := h.InitRoutes()
	if err != nil {
		panic(err)
	}
	return r
}

func newTestRouter(auth service.Authorization) *gin.Engine {
	return newTestRouterWith(&service.Service{Authorization: auth})
}

// browser replays the last session cookie it was given, like a real client.
type browser struct {
	r      http.Handler
	cookie *http.Cookie
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(&http.Cookie{Name: b.cookie.Name, Value: b.cookie.Value})
	}

	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name != testCookieName {
			continue
		}
		if c.MaxAge < 0 {
			b.cookie = nil
		} else {
			b.cookie = c
		}
	}
	return w
}
