package handlers

import (
	"errors"
	"net/http"

	"knoyosta-backend/service"

	"github.com/gin-gonic/gin"
)

// OracleHandler handles HTTP requests for oracle chat
type OracleHandler struct {
	oracle *service.OracleService
}

// NewOracleHandler creates a new oracle handler
func NewOracleHandler(oracle *service.OracleService) *OracleHandler {
	return &OracleHandler{oracle: oracle}
}

// ChatRequest represents the request body for a chat turn
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// Chat handles POST /chat
func (h *OracleHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_INPUT",
				"message": "message is required",
			},
		})
		return
	}

	result, err := h.oracle.Answer(c.Request.Context(), service.ChatRequest{
		Message:   req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_INPUT",
					"message": "message is required",
				},
			})
		case errors.Is(err, service.ErrUnconfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNCONFIGURED",
					"message": "the oracle is not configured",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPSTREAM_UNAVAILABLE",
					"message": "the oracle could not be reached",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"response": result.Response,
		},
	})
}
