package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GuessMappingRequest carries detected headers and the wanted metric keys.
type GuessMappingRequest struct {
	Columns      []string `json:"columns" binding:"required"`
	SelectedKeys []string `json:"selectedKeys"`
}

// GuessMapping auto-resolves canonical keys against uploaded headers.
// POST /api/mapping/guess
func (h *Handler) GuessMapping(c *gin.Context) {
	var req GuessMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	mapping := h.matcher.AutoGuess(req.Columns, req.SelectedKeys)
	c.JSON(http.StatusOK, gin.H{"mapping": mapping})
}

// ListAliases returns the merged alias table.
// GET /api/aliases
func (h *Handler) ListAliases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"aliases": h.aliases.Load()})
}

// AliasRequest identifies one key/spelling pair.
type AliasRequest struct {
	Key      string `json:"key" binding:"required"`
	Spelling string `json:"spelling" binding:"required"`
}

// AddAlias teaches a spelling for a canonical key.
// POST /api/aliases
func (h *Handler) AddAlias(c *gin.Context) {
	var req AliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.aliases.Add(req.Key, req.Spelling)
	c.JSON(http.StatusOK, gin.H{"aliases": h.aliases.AliasesFor(req.Key)})
}

// RemoveAlias forgets a spelling.
// DELETE /api/aliases
func (h *Handler) RemoveAlias(c *gin.Context) {
	var req AliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.aliases.Remove(req.Key, req.Spelling)
	c.JSON(http.StatusOK, gin.H{"aliases": h.aliases.AliasesFor(req.Key)})
}
