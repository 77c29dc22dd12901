package controllers

import (
	"net/http"

	"platewise-backend/services"

	"github.com/gin-gonic/gin"
)

type RegistrationController struct {
	reg *services.RegistrationService
}

func NewRegistrationController(reg *services.RegistrationService) *RegistrationController {
	return &RegistrationController{reg: reg}
}

// GET /registration/:session
func (rc *RegistrationController) GetDraft(c *gin.Context) {
	draft := rc.reg.Get(c.Request.Context(), c.Param("session"))
	c.JSON(http.StatusOK, draft)
}

// POST /registration/:session/step  body: {"fields": {...}}
func (rc *RegistrationController) UpdateFields(c *gin.Context) {
	var input struct {
		Fields map[string]interface{} `json:"fields" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	draft, errs := rc.reg.UpdateFields(c.Request.Context(), c.Param("session"), input.Fields)
	c.JSON(http.StatusOK, gin.H{"draft": draft, "errors": errs})
}

// POST /registration/:session/next
func (rc *RegistrationController) Next(c *gin.Context) {
	draft, errs := rc.reg.Next(c.Request.Context(), c.Param("session"))
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"draft": draft, "errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// POST /registration/:session/back
func (rc *RegistrationController) Back(c *gin.Context) {
	draft := rc.reg.Back(c.Request.Context(), c.Param("session"))
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// POST /registration/:session/complete
func (rc *RegistrationController) Complete(c *gin.Context) {
	draft, token, errs, err := rc.reg.Complete(c.Request.Context(), c.Param("session"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"draft": draft, "errors": errs})
		return
	}
	if !draft.Submitted {
		c.JSON(http.StatusConflict, gin.H{"error": "complete is only allowed from the final step", "draft": draft})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "token": token})
}
