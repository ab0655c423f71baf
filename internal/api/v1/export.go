package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/exporter"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// ExportResult downloads the latest aggregates as CSV or XLSX.
// GET /api/result/export?format=csv&set=qualified
func (h *Handler) ExportResult(c *gin.Context) {
	result := h.coordinator.Latest()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no upload processed yet"})
		return
	}

	var rows []model.AggregateRow
	switch c.DefaultQuery("set", "all") {
	case "qualified":
		rows = result.Qualified
	case "disqualified":
		rows = result.Disqualified
	default:
		rows = result.Aggregates
	}

	opts := exporter.Options{}
	if len(result.Diagnostics.UnmappedMetrics) == 0 && result.Mapping != nil {
		// Export only what the upload actually mapped, in catalog order.
		keys := make([]string, 0)
		for _, key := range model.CatalogKeys() {
			if result.Mapping.Column(key) != "" {
				keys = append(keys, key)
			}
		}
		if len(keys) > 0 {
			opts.MetricKeys = keys
		}
	}

	stamp := time.Now().Format("20060102_150405")
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		data, err := exporter.WriteXLSX(rows, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filename := fmt.Sprintf("pocketmanager_export_%s.xlsx", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		data, err := exporter.WriteCSV(rows, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filename := fmt.Sprintf("pocketmanager_export_%s.csv", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		c.Data(http.StatusOK, "text/csv", data)
	}
}
