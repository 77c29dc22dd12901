package controllers

import (
	"net/http"

	"platewise-backend/models"
	"platewise-backend/services"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	hist *services.HistoryService
}

func NewHistoryController(hist *services.HistoryService) *HistoryController {
	return &HistoryController{hist: hist}
}

// POST /history/:session  body: raw food record
func (hc *HistoryController) AddToHistory(c *gin.Context) {
	var raw models.RawFood
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	hc.hist.AddToHistory(c.Request.Context(), c.Param("session"), *models.NormalizeFood(&raw))
	c.JSON(http.StatusOK, gin.H{"message": "recorded"})
}

type historyEntryOut struct {
	models.HistoryEntry
	TimeAgo string `json:"time_ago"`
}

// GET /history/:session
func (hc *HistoryController) GetHistory(c *gin.Context) {
	entries := hc.hist.GetHistory(c.Request.Context(), c.Param("session"))
	out := make([]historyEntryOut, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryOut{
			HistoryEntry: e,
			TimeAgo:      hc.hist.TimeAgo(e.ViewedAt),
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}
