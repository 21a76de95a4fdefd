package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/unibudget/unibudget_backend/utils"
)

// Error mapping for the REST surface: missing records are 404, anything
// the caller can fix is 400, storage failures are a generic 500 so DB
// details never leak to the client.
func respondError(c *gin.Context, err error, storeMessage string) {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case utils.IsInsufficientSaved(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": storeMessage})
	}
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, utils.ErrorRecordNotFound)
}

func respondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

// sessionUserId reads the authenticated user id; RequireSession guarantees
// it is present on these routes.
func sessionUserId(c *gin.Context) int {
	userId, _ := utils.GetUserIdFromContext(c.Request.Context())
	return userId
}

func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}
