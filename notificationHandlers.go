package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unibudget/unibudget_backend/models"
)

func getNotificationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		notifications, err := models.GetNotifications(c.Request.Context(), sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not load notifications, try again")
			return
		}
		if notifications == nil {
			notifications = []models.Notification{}
		}
		c.JSON(http.StatusOK, notifications)
	}
}

func dismissNotificationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "notification id is required"})
			return
		}
		if err := models.DismissNotification(c.Request.Context(), sessionUserId(c), id); err != nil {
			respondError(c, err, "could not dismiss notification, try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
