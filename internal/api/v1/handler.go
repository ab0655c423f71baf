// Package v1 is the HTTP API: upload processing, mapping management,
// presets, goals, exports, and the captain tools.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/alias"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/importer"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/mapper"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/store"
)

// Handler bundles the API dependencies.
type Handler struct {
	store       *store.Store
	aliases     *alias.Manager
	matcher     *mapper.Matcher
	coordinator *importer.Coordinator
}

// NewHandler wires the API against its store. The alias manager, matcher,
// and import coordinator all hang off the same store instance.
func NewHandler(s *store.Store) *Handler {
	aliases := alias.NewManager(s)
	matcher := mapper.New(aliases)
	return &Handler{
		store:       s,
		aliases:     aliases,
		matcher:     matcher,
		coordinator: importer.NewCoordinator(matcher, s),
	}
}

// RegisterRoutes mounts every endpoint under the given group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// Upload pipeline
	router.POST("/upload", h.Upload)
	router.GET("/result", h.GetResult)
	router.GET("/result/leaderboard", h.GetLeaderboard)
	router.GET("/result/export", h.ExportResult)

	// Column mapping
	router.POST("/mapping/guess", h.GuessMapping)
	router.GET("/aliases", h.ListAliases)
	router.POST("/aliases", h.AddAlias)
	router.DELETE("/aliases", h.RemoveAlias)

	// Presets
	router.GET("/presets", h.ListPresets)
	router.GET("/presets/:id", h.GetPreset)
	router.POST("/presets", h.SavePreset)
	router.DELETE("/presets/:id", h.DeletePreset)

	// Goals and thresholds
	router.GET("/goals/:cadence", h.GetGoals)
	router.PUT("/goals/:cadence", h.SetGoals)
	router.GET("/thresholds", h.GetThresholds)
	router.PUT("/thresholds/:name", h.SetThreshold)

	// Shop directory
	router.GET("/directory", h.ListDirectory)
	router.PUT("/directory", h.UpsertDirectory)
	router.DELETE("/directory/:id", h.DeleteDirectoryEntry)

	// Captain tools
	router.GET("/recognition/awards", h.ListAwards)
	router.POST("/recognition/process", h.ProcessRecognition)
	router.POST("/inventory/process", h.ProcessInventory)
}

// StatusResponse is the health and readiness snapshot.
type StatusResponse struct {
	Ready          bool     `json:"ready"`
	HasResult      bool     `json:"hasResult"`
	LastUploadID   string   `json:"lastUploadId,omitempty"`
	LastFileName   string   `json:"lastFileName,omitempty"`
	CatalogKeys    []string `json:"catalogKeys"`
	DirectorySize  int      `json:"directorySize"`
	PresetCount    int      `json:"presetCount"`
	ThresholdCount int      `json:"thresholdCount"`
}

// GetStatus reports readiness and what the server currently holds.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Ready:       true,
		CatalogKeys: model.CatalogKeys(),
	}

	if result := h.coordinator.Latest(); result != nil {
		resp.HasResult = true
		resp.LastUploadID = result.UploadID
		resp.LastFileName = result.FileName
	}
	if entries, err := h.store.ListDirectory(); err == nil {
		resp.DirectorySize = len(entries)
	}
	if presets, err := h.store.ListPresets(""); err == nil {
		resp.PresetCount = len(presets)
	}
	if thresholds, err := h.store.GetThresholds(); err == nil {
		resp.ThresholdCount = len(thresholds)
	}

	c.JSON(http.StatusOK, resp)
}
