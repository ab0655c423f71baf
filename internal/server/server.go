// Package server assembles the gin engine: CORS, the API group, and the
// SQLite store lifecycle.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kwo744-075/pocketmanager5-site-sub000/internal/api/v1"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/config"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/store"
)

// Server is the HTTP server.
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *v1.Handler
}

// NewServer builds the server from the loaded config.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if _, err := config.EnsureDataDir(cfg); err != nil {
		log.Fatalf("Failed to prepare data directory: %v", err)
	}

	sqliteStore, err := store.New(config.DatabasePath(cfg))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    v1.NewHandler(sqliteStore),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
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

	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":   "pocketmanager",
			"status": "ok",
			"api":    "/api",
		})
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no route for %s", c.Request.URL.Path)})
	})
}

// Run starts listening on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// GetStore exposes the store for tests.
func (s *Server) GetStore() *store.Store {
	return s.store
}
