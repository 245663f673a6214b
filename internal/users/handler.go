package users

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dailydiet/internal/session"
)

// Store is the persistence surface the handler depends on.
type Store interface {
	Create(ctx context.Context, id uuid.UUID, sessionID, name, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// Handler handles HTTP requests for users.
type Handler struct {
	store         Store
	sessionMaxAge time.Duration
	secureCookie  bool
}

// NewHandler creates a new users handler.
func NewHandler(store Store, sessionMaxAge time.Duration, secureCookie bool) *Handler {
	return &Handler{
		store:         store,
		sessionMaxAge: sessionMaxAge,
		secureCookie:  secureCookie,
	}
}

// RegisterRoutes mounts the user endpoints. None of them require a
// session.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/users")
	{
		group.POST("", h.CreateUser)
		group.GET("", h.ListUsers)
		group.GET("/:id", h.GetUser)
	}
}

// CreateUser handles POST /users.
// The session cookie is issued before the body is validated; a 400
// response still carries a fresh cookie, and clients depend on that
// ordering.
func (h *Handler) CreateUser(c *gin.Context) {
	sessionID := session.NewID()
	session.Issue(c, sessionID, h.sessionMaxAge, h.secureCookie)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.Create(c.Request.Context(), uuid.New(), sessionID, req.Name, req.Email); err != nil {
		slog.Error("Failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.Status(http.StatusCreated)
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser handles GET /users/:id. A missing user is not an error: the
// response is 200 with a null user.
func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to get user", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
