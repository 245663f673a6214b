// Package server wires configuration, the database handle and the HTTP
// router into a runnable server.
package server

import (
	"fmt"
	"net/http"
	"time"

	"dailydiet/internal/config"
	"dailydiet/internal/database"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	cfg *config.Config
	db  database.Service
}

// New creates a configured *http.Server. The database handle is owned
// here and injected into each resource repository; nothing reaches for
// it globally.
func New(cfg *config.Config, db database.Service) *http.Server {
	appServer := &Server{
		cfg: cfg,
		db:  db,
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           appServer.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
