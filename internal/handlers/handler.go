package handlers

import (
	"fmt"
	"net/http"

	"signup_portal/internal/logger"
	"signup_portal/internal/service"
	"signup_portal/internal/session"
	"signup_portal/internal/web"

	"github.com/gin-gonic/gin"
)

const notFoundMessage = "Sorry, that route does not exist."

// Handler wires HTTP layer to services, sessions and logging.
type Handler struct {
	services *service.Service
	sessions *session.Manager
	log      *logger.Logger
	metrics  http.Handler
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, sessions *session.Manager, log *logger.Logger) *Handler {
	return &Handler{services: services, sessions: sessions, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.accessLog)
	router.SetHTMLTemplate(tmpl)

	router.StaticFS("/static", web.Static())
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	h.registerPageRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, notFoundMessage)
	})
	return router, nil
}

// registerPageRoutes mounts every route that reads or writes the session.
func (h *Handler) registerPageRoutes(r *gin.Engine) {
	pages := r.Group("/", h.sessions.Middleware())
	{
		pages.GET("/", h.home)

		pages.GET("/signup", h.signUpPage)
		pages.POST("/signup", h.signUp)

		pages.GET("/login", h.loginPage)
		pages.POST("/login", h.signIn)

		pages.POST("/logout", h.logout)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
