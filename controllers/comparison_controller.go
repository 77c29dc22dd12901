package controllers

import (
	"errors"
	"net/http"

	"platewise-backend/models"
	"platewise-backend/services"

	"github.com/gin-gonic/gin"
)

type ComparisonController struct {
	cmp *services.ComparisonService
}

func NewComparisonController(cmp *services.ComparisonService) *ComparisonController {
	return &ComparisonController{cmp: cmp}
}

// GET /comparison/:session
func (cc *ComparisonController) GetSet(c *gin.Context) {
	set := cc.cmp.Get(c.Request.Context(), c.Param("session"))
	c.JSON(http.StatusOK, gin.H{
		"foods": set,
		"best":  services.BestValues(set),
	})
}

// POST /comparison/:session/items  body: raw food record
func (cc *ComparisonController) AddItem(c *gin.Context) {
	var raw models.RawFood
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	set, err := cc.cmp.Add(c.Request.Context(), c.Param("session"), *models.NormalizeFood(&raw))
	switch {
	case errors.Is(err, services.ErrComparisonFull):
		c.JSON(http.StatusConflict, gin.H{"error": "comparison set is full (max 4 items)"})
		return
	case errors.Is(err, services.ErrAlreadyInSet):
		c.JSON(http.StatusConflict, gin.H{"error": "food is already being compared"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update comparison set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": set})
}

// DELETE /comparison/:session/items/:id
func (cc *ComparisonController) RemoveItem(c *gin.Context) {
	set, err := cc.cmp.Remove(c.Request.Context(), c.Param("session"), models.FlexID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update comparison set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": set})
}

// DELETE /comparison/:session
func (cc *ComparisonController) ClearSet(c *gin.Context) {
	if err := cc.cmp.Clear(c.Request.Context(), c.Param("session")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear comparison set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}
