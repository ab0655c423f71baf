package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/inventory"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/period"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/recognition"
)

// ListAwards returns the stock award slate and metric namespace.
// GET /api/recognition/awards
func (h *Handler) ListAwards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"awards":  recognition.DefaultAwards,
		"metrics": recognition.Metrics,
	})
}

// RecognitionRequest is a recognition evaluation run.
type RecognitionRequest struct {
	Dataset         []recognition.DatasetRow  `json:"dataset" binding:"required"`
	Awards          []recognition.AwardConfig `json:"awards"`
	ReportingPeriod string                    `json:"reportingPeriod"`
	DataSource      string                    `json:"dataSource"`
	FileName        string                    `json:"fileName"`
}

// ProcessRecognition evaluates awards over a period dataset.
// POST /api/recognition/process
func (h *Handler) ProcessRecognition(c *gin.Context) {
	var req RecognitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reportingPeriod := period.Normalize(req.ReportingPeriod)
	if reportingPeriod == "" {
		reportingPeriod = period.InferFromFileName(req.FileName)
	}

	results := recognition.Evaluate(req.Dataset, req.Awards)
	summary := recognition.BuildSummary(req.Dataset, recognition.SummaryOptions{
		ReportingPeriod: reportingPeriod,
		DataSource:      req.DataSource,
	})

	c.JSON(http.StatusOK, gin.H{
		"runId":   uuid.NewString(),
		"summary": summary,
		"awards":  results,
	})
}

// InventoryRequest is an inventory count-log processing run.
type InventoryRequest struct {
	Rows       []inventory.LogRow         `json:"rows" binding:"required"`
	Thresholds *inventory.ThresholdConfig `json:"thresholds"`
}

// ProcessInventory rolls a count log up to shop days and district summaries.
// POST /api/inventory/process
func (h *Handler) ProcessInventory(c *gin.Context) {
	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	thresholds := inventory.DefaultThresholds
	if req.Thresholds != nil {
		thresholds = *req.Thresholds
	}

	shopDays := inventory.BuildShopDays(req.Rows)
	summaries := inventory.SummarizeDistricts(shopDays, thresholds)

	c.JSON(http.StatusOK, gin.H{
		"runId":             uuid.NewString(),
		"thresholds":        thresholds,
		"shopStatuses":      shopDays,
		"districtSummaries": summaries,
	})
}
