package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unibudget/unibudget_backend/models"
)

func createTipHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTip
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		input.AuthorId = sessionUserId(c)
		tip, err := models.CreateTip(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, tip)
	}
}

func getTipsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tips, err := models.GetTips(c.Request.Context())
		if err != nil {
			respondError(c, err, "could not load tips, try again")
			return
		}
		c.JSON(http.StatusOK, tips)
	}
}

func likeTipHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		tip, err := models.LikeTip(c.Request.Context(), id, sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not like tip, try again")
			return
		}
		c.JSON(http.StatusOK, tip)
	}
}

func deleteTipHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := models.DeleteTip(c.Request.Context(), id, sessionUserId(c)); err != nil {
			if errorsIsNotFound(err) {
				respondError(c, err, "")
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
