package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dailydiet/internal/meals"
	"dailydiet/internal/users"
)

// RegisterRoutes builds the gin router with middleware and all resource
// endpoints.
func (s *Server) RegisterRoutes() http.Handler {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // the session cookie must ride cross-origin requests
	}))

	r.GET("/health", s.healthHandler)

	usersHandler := users.NewHandler(
		users.NewRepository(s.db),
		s.cfg.SessionMaxAge,
		s.cfg.IsProduction(),
	)
	usersHandler.RegisterRoutes(r)

	mealsHandler := meals.NewHandler(meals.NewRepository(s.db))
	mealsHandler.RegisterRoutes(r)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"database": s.db.Health(),
	})
}
