package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPreference handles GET /api/preferences/:scope: the raw keyed preference
// read used by clients that manage their own view state.
func (h *Handler) GetPreference(c *gin.Context) {
	scope := c.Param("scope")
	value, err := h.store.GetPreference(c.Request.Context(), scope)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "preference not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to read preference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scope": scope, "value": value})
}

type putPreferenceRequest struct {
	Value string `json:"value" binding:"required"`
}

// PutPreference handles PUT /api/preferences/:scope.
func (h *Handler) PutPreference(c *gin.Context) {
	scope := c.Param("scope")

	var req putPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SetPreference(c.Request.Context(), scope, req.Value); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist preference"})
		return
	}
	c.Status(http.StatusNoContent)
}
