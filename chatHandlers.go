package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unibudget/unibudget_backend/assistant"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func chatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		reply, err := assistant.Reply(c.Request.Context(), sessionUserId(c), req.Message)
		if err != nil {
			respondError(c, err, "could not answer right now, try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}
