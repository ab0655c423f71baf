package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/calculator"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/importer"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/normalizer"
)

func percentScaleFromString(s string) normalizer.PercentScale {
	switch s {
	case "fraction":
		return normalizer.ScaleAsFraction
	case "whole":
		return normalizer.ScaleAsWholeNumber
	default:
		return normalizer.ScaleAuto
	}
}

// Upload ingests a workbook and streams pipeline progress as SSE.
// POST /api/upload (multipart: file, plus form options)
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no upload file found"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	req := importer.Request{
		FileName:     fileHeader.Filename,
		Data:         data,
		Cadence:      model.Cadence(c.DefaultPostForm("cadence", "weekly")),
		Scope:        model.Scope(c.DefaultPostForm("scope", "shop")),
		Sheet:        c.PostForm("sheet"),
		PercentScale: percentScaleFromString(c.PostForm("percentScale")),
		RankMetric:   c.PostForm("rankMetric"),
		SecondaryKey: c.PostForm("secondaryMetric"),
		FullRoster:   c.PostForm("fullRoster") == "true",
	}
	if limit := c.PostForm("rankLimit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			req.RankLimit = n
		}
	}
	if raw := c.PostForm("headerRow"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid headerRow"})
			return
		}
		req.HeaderRow = &n
	}
	if keys := c.PostForm("selectedKeys"); keys != "" {
		if err := json.Unmarshal([]byte(keys), &req.SelectedKeys); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid selectedKeys"})
			return
		}
	}
	if mapping := c.PostForm("mapping"); mapping != "" {
		if err := json.Unmarshal([]byte(mapping), &req.Mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping"})
			return
		}
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	for event := range h.coordinator.Import(c.Request.Context(), req) {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// GetResult returns the latest finished pipeline output.
// GET /api/result
func (h *Handler) GetResult(c *gin.Context) {
	result := h.coordinator.Latest()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no upload processed yet"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLeaderboard re-ranks the latest qualified rows on demand.
// GET /api/result/leaderboard?metric=cars&secondary=nps&limit=10
func (h *Handler) GetLeaderboard(c *gin.Context) {
	result := h.coordinator.Latest()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no upload processed yet"})
		return
	}

	metric := c.Query("metric")
	if metric == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "metric is required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	board, err := calculator.Rank(result.Qualified, metric, calculator.RankOptions{
		Goals:        result.Goals,
		SecondaryKey: c.Query("secondary"),
		Limit:        limit,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metric": metric, "entries": board})
}
