package controllers

import (
	"net/http"

	"platewise-backend/utils"

	"github.com/gin-gonic/gin"
)

type UploadImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
	FoodName    string `json:"food_name"`
}

// POST /foods/image
//
// Stores a user-contributed food photo and returns its URL. Catalog records
// without one keep the placeholder image.
func UploadFoodImage(c *gin.Context) {
	var req UploadImageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	prefix := req.FoodName
	if prefix == "" {
		prefix = "food"
	}
	url, err := utils.UploadFoodImage(req.ImageBase64, prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
