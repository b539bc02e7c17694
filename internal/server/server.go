package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/api"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/config"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/dataset"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/planner"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/report"
)

// Server servidor HTTP do dashboard
type Server struct {
	router  *gin.Engine
	service *report.Service
	handler *api.Handler
}

// NewServer monta o servidor sobre o diretório de dados resolvido
func NewServer(cfg *config.AppConfig, baseDir string) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	resolver := datafiles.NewResolver(baseDir)
	cache := dataset.NewCache(resolver)
	service := report.NewService(cache)
	plannerStore := planner.NewStore(resolver.ResolvePath("dados"))

	s := &Server{
		router:  gin.Default(),
		service: service,
		handler: api.NewHandler(service, resolver, plannerStore, cfg.Report),
	}

	s.setupRoutes(cfg.Server.DevMode)
	return s
}

// Service serviço de relatórios compartilhado (usado pelos jobs)
func (s *Server) Service() *report.Service {
	return s.service
}

// setupRoutes registra middleware e rotas
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.handler.RegisterRoutes(apiGroup)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if devMode {
		// Modo dev: front roda no servidor de desenvolvimento do Next
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:3000"+c.Request.URL.Path)
		})
	}
}

// Run inicia o servidor
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
