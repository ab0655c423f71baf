package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// ListPresets lists saved presets, optionally filtered by ?cadence=.
// GET /api/presets
func (h *Handler) ListPresets(c *gin.Context) {
	presets, err := h.store.ListPresets(model.Cadence(c.Query("cadence")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

// GetPreset loads one preset.
// GET /api/presets/:id
func (h *Handler) GetPreset(c *gin.Context) {
	preset, err := h.store.GetPreset(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, preset)
}

// SavePreset creates or updates a preset. Missing ids are assigned.
// POST /api/presets
func (h *Handler) SavePreset(c *gin.Context) {
	var preset model.Preset
	if err := c.ShouldBindJSON(&preset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if preset.Cadence == "" || preset.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cadence and title are required"})
		return
	}
	if preset.ID == "" {
		preset.ID = uuid.NewString()
	}

	if err := h.store.SavePreset(preset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": preset.ID})
}

// DeletePreset removes a preset.
// DELETE /api/presets/:id
func (h *Handler) DeletePreset(c *gin.Context) {
	if err := h.store.DeletePreset(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
