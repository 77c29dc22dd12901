package controllers

import (
	"net/http"

	"platewise-backend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users services.UserRepository
}

func NewAuthController(users services.UserRepository) *AuthController {
	return &AuthController{users: users}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
//
// Accounts are created through the registration wizard, not here.
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := services.AuthenticateUser(ac.users, input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
