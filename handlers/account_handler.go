package handlers

import (
	"errors"
	"net/http"

	"knoyosta-backend/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests for registration
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// RegisterRequest represents the request body for registering a seeker
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
}

// Register handles POST /register
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_INPUT",
				"message": "email, password and birth_date are required",
			},
		})
		return
	}

	result, err := h.accounts.Register(c.Request.Context(), service.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_INPUT",
					"message": "birth_date must be a valid YYYY-MM-DD date",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPSTREAM_UNAVAILABLE",
				"message": "registration is temporarily unavailable",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"message":  "Profile aligned.",
			"sun_sign": result.SunSign,
		},
	})
}
