package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/unibudget/unibudget_backend/models"
)

func getGoalsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		goals, err := models.GetGoals(c.Request.Context(), sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not load goals, try again")
			return
		}
		c.JSON(http.StatusOK, goals)
	}
}

func getBudgetStatusesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		statuses, err := models.GetBudgetStatuses(c.Request.Context(), sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not evaluate budgets, try again")
			return
		}
		c.JSON(http.StatusOK, statuses)
	}
}

func getSavingGoalStatusesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		statuses, err := models.GetSavingGoalStatuses(c.Request.Context(), sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not evaluate saving goals, try again")
			return
		}
		c.JSON(http.StatusOK, statuses)
	}
}

type goalAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func addToGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req goalAmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		goal, err := models.AddToGoal(c.Request.Context(), sessionUserId(c), id, req.Amount)
		if err != nil {
			if errorsIsNotFound(err) {
				respondError(c, err, "")
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

func withdrawFromGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req goalAmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		goal, err := models.WithdrawFromGoal(c.Request.Context(), sessionUserId(c), id, req.Amount)
		if err != nil {
			if errorsIsNotFound(err) {
				respondError(c, err, "")
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}
