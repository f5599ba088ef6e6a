package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"attritionlens/internal"
	"attritionlens/internal/dataset"
	"attritionlens/internal/session"
	"attritionlens/ports"
	"attritionlens/ui/middleware"
	"attritionlens/ui/services"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// Server represents the web server for the attrition dashboard
type Server struct {
	router    *gin.Engine
	templates *template.Template
	data      *services.DataService
	render    *services.RenderService
	sessions  *session.Manager
	logger    *internal.Logger
}

// NewServer creates the server and registers every route
func NewServer(source ports.DatasetSource, cache *dataset.Cache, sessions *session.Manager) (*Server, error) {
	funcMap := template.FuncMap{
		"add":  func(a, b int) int { return a + b },
		"join": strings.Join,
		"num":  formatFloat,
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		templates: templates,
		data:      services.NewDataService(source, cache),
		render:    services.NewRenderService(templates),
		sessions:  sessions,
		logger:    internal.DefaultLogger.With("UI"),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	// HTML dashboard
	s.router.GET("/", s.handleIndex)
	s.router.POST("/filters", s.handleFilterForm)
	s.router.POST("/filters/reset", s.handleFilterReset)

	api := s.router.Group("/api")
	api.GET("/dataset", s.handleDataset)
	api.GET("/options", s.handleOptions)
	api.GET("/charts", s.handleCharts)
	api.POST("/sessions", s.handleCreateSession)

	sess := api.Group("/sessions/:id", middleware.LoadSession(s.sessions))
	sess.GET("/criteria", s.handleGetCriteria)
	sess.PUT("/criteria", s.handlePutCriteria)
	sess.POST("/reset", s.handleResetCriteria)
	sess.GET("/dashboard", s.handleDashboard)
	sess.GET("/raw", s.handleRaw)
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer wraps the router for graceful shutdown
func (s *Server) HTTPServer(port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}
