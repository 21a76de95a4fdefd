package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/unibudget/unibudget_backend/models"
)

func createTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTransaction
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		input.UserId = sessionUserId(c)
		tx, err := models.CreateTransaction(c.Request.Context(), &input)
		if err != nil {
			if tx != nil {
				// entry stored, reconcile failed
				respondError(c, err, "could not save, try again")
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, tx)
	}
}

func getTransactionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetTransactions(c.Request.Context(), sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not load transactions, try again")
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getAllTransactionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetAllTransactions(c.Request.Context(), sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not load transactions, try again")
			return
		}
		// future student finance terms stay hidden
		now := time.Now()
		for _, tx := range results {
			if tx.Type == models.TransactionTypeStudentFinance {
				tx.StudentFinancePayments = models.DisbursedStudentFinancePayments(tx, now)
			}
		}
		c.JSON(http.StatusOK, results)
	}
}

func getTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		tx, err := models.GetTransaction(c.Request.Context(), sessionUserId(c), id)
		if err != nil {
			respondError(c, err, "could not load transaction, try again")
			return
		}
		if tx.Type == models.TransactionTypeStudentFinance {
			tx.StudentFinancePayments = models.DisbursedStudentFinancePayments(tx, time.Now())
		}
		c.JSON(http.StatusOK, tx)
	}
}

func updateTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var input models.NewTransaction
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		input.UserId = sessionUserId(c)
		tx, err := models.UpdateTransaction(c.Request.Context(), id, &input)
		if err != nil {
			if tx == nil && !errorsIsNotFound(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			respondError(c, err, "could not update, try again")
			return
		}
		c.JSON(http.StatusOK, tx)
	}
}

func deleteTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		tx, err := models.DeleteTransaction(c.Request.Context(), sessionUserId(c), id)
		if err != nil {
			respondError(c, err, "could not delete, try again")
			return
		}
		c.JSON(http.StatusOK, tx)
	}
}

func getBalanceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		balance, err := models.GetBalance(c.Request.Context(), sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not load balance, try again")
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}

type setBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func setBalanceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setBalanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		balance, err := models.SetBalance(c.Request.Context(), sessionUserId(c), req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}
