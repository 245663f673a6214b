package meals

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dailydiet/internal/session"
)

// Store is the persistence surface the handler depends on.
type Store interface {
	Create(ctx context.Context, id uuid.UUID, name, description, date string, isOnDiet bool, userID string) error
	ListByOwner(ctx context.Context, userID string) ([]Meal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Meal, error)
	GetByIDForOwner(ctx context.Context, id uuid.UUID, userID string) (*Meal, error)
	Update(ctx context.Context, id uuid.UUID, name, description, date string, isOnDiet bool) error
	SetOnDiet(ctx context.Context, id uuid.UUID, isOnDiet bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Metrics(ctx context.Context, userID string) (*Metrics, error)
}

// Handler handles HTTP requests for meals.
type Handler struct {
	store Store
}

// NewHandler creates a new meals handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the meal endpoints. Every route sits behind the
// session guard.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/meals")
	group.Use(session.Required())
	{
		group.POST("", h.CreateMeal)
		group.GET("", h.ListMeals)
		group.GET("/metrics", h.GetMetrics)
		group.GET("/:id", h.GetMeal)
		group.PUT("/:id", h.UpdateMeal)
		group.PATCH("/:id/is_on_diet", h.SetOnDiet)
		group.DELETE("/:id", h.DeleteMeal)
	}
}

// CreateMeal handles POST /meals. Ownership is the caller's session id.
func (h *Handler) CreateMeal(c *gin.Context) {
	sessionID, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
		return
	}

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use ISO format or a parsable string."})
		return
	}

	if err := h.store.Create(c.Request.Context(), uuid.New(), req.Name, req.Description, req.Date, *req.IsOnDiet, sessionID); err != nil {
		slog.Error("Failed to create meal", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create meal"})
		return
	}

	c.Status(http.StatusCreated)
}

// ListMeals handles GET /meals.
func (h *Handler) ListMeals(c *gin.Context) {
	sessionID, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
		return
	}

	meals, err := h.store.ListByOwner(c.Request.Context(), sessionID)
	if err != nil {
		slog.Error("Failed to list meals", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// GetMeal handles GET /meals/:id. The lookup is scoped to the caller;
// a miss is 200 with a null meal, never 404.
func (h *Handler) GetMeal(c *gin.Context) {
	sessionID, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	meal, err := h.store.GetByIDForOwner(c.Request.Context(), id, sessionID)
	if err != nil {
		slog.Error("Failed to get meal", "meal_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// UpdateMeal handles PUT /meals/:id. The existence check is by id only,
// not scoped to the caller, and the update never rewrites ownership.
func (h *Handler) UpdateMeal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	meal, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to look up meal", "meal_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve meal"})
		return
	}
	if meal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use ISO format or a parsable string."})
		return
	}

	if err := h.store.Update(c.Request.Context(), id, req.Name, req.Description, req.Date, *req.IsOnDiet); err != nil {
		slog.Error("Failed to update meal", "meal_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal"})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetOnDiet handles PATCH /meals/:id/is_on_diet.
func (h *Handler) SetOnDiet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	meal, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to look up meal", "meal_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve meal"})
		return
	}
	if meal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	var req SetOnDietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SetOnDiet(c.Request.Context(), id, *req.IsOnDiet); err != nil {
		slog.Error("Failed to set on-diet flag", "meal_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteMeal handles DELETE /meals/:id. The existence check is scoped
// to the caller, so another session's meal reads as absent.
func (h *Handler) DeleteMeal(c *gin.Context) {
	sessionID, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	meal, err := h.store.GetByIDForOwner(c.Request.Context(), id, sessionID)
	if err != nil {
		slog.Error("Failed to look up meal", "meal_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve meal"})
		return
	}
	if meal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		slog.Error("Failed to delete meal", "meal_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMetrics handles GET /meals/metrics.
func (h *Handler) GetMetrics(c *gin.Context) {
	sessionID, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
		return
	}

	metrics, err := h.store.Metrics(c.Request.Context(), sessionID)
	if err != nil {
		slog.Error("Failed to compute meal metrics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute metrics"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
