package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// GetGoals returns the goal sheet for a cadence.
// GET /api/goals/:cadence
func (h *Handler) GetGoals(c *gin.Context) {
	goals, err := h.store.GetGoals(model.Cadence(c.Param("cadence")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// SetGoals replaces the goal sheet for a cadence.
// PUT /api/goals/:cadence
func (h *Handler) SetGoals(c *gin.Context) {
	var goals model.GoalMap
	if err := c.ShouldBindJSON(&goals); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.store.SetGoals(model.Cadence(c.Param("cadence")), goals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetThresholds lists the qualification floors.
// GET /api/thresholds
func (h *Handler) GetThresholds(c *gin.Context) {
	thresholds, err := h.store.GetThresholds()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"thresholds": thresholds})
}

// ThresholdRequest carries one floor value.
type ThresholdRequest struct {
	Value float64 `json:"value"`
}

// SetThreshold upserts a named floor.
// PUT /api/thresholds/:name
func (h *Handler) SetThreshold(c *gin.Context) {
	var req ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.store.SetThreshold(c.Param("name"), req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDirectory returns the shop directory.
// GET /api/directory
func (h *Handler) ListDirectory(c *gin.Context) {
	entries, err := h.store.ListDirectory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"directory": entries})
}

// UpsertDirectory writes shop entries.
// PUT /api/directory
func (h *Handler) UpsertDirectory(c *gin.Context) {
	var entries []model.DirectoryEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.store.UpsertDirectory(entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries)})
}

// DeleteDirectoryEntry removes one shop.
// DELETE /api/directory/:id
func (h *Handler) DeleteDirectoryEntry(c *gin.Context) {
	if err := h.store.DeleteDirectoryEntry(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
