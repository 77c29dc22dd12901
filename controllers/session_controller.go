package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /session
//
// Hands the client an opaque session id; history, comparison sets and
// registration drafts all key off it.
func NewSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"session": uuid.NewString()})
}
