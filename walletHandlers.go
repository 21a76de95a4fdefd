package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unibudget/unibudget_backend/models"
)

type walletView struct {
	*models.SharedWallet
	Balance string `json:"balance"`
}

func toWalletView(w *models.SharedWallet) walletView {
	return walletView{SharedWallet: w, Balance: w.WalletBalance().StringFixed(2)}
}

func createWalletHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSharedWallet
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		input.OwnerId = sessionUserId(c)
		wallet, err := models.CreateSharedWallet(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toWalletView(wallet))
	}
}

func getWalletsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		wallets, err := models.GetSharedWallets(c.Request.Context(), sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not load wallets, try again")
			return
		}
		views := make([]walletView, 0, len(wallets))
		for _, w := range wallets {
			views = append(views, toWalletView(w))
		}
		c.JSON(http.StatusOK, views)
	}
}

func getWalletHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		wallet, err := models.GetSharedWallet(c.Request.Context(), id, sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not load wallet, try again")
			return
		}
		c.JSON(http.StatusOK, toWalletView(wallet))
	}
}

func updateWalletHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var input models.NewSharedWallet
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		wallet, err := models.UpdateSharedWallet(c.Request.Context(), id, sessionUserId(c), &input)
		if err != nil {
			if errorsIsNotFound(err) {
				respondError(c, err, "")
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toWalletView(wallet))
	}
}

func deleteWalletHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := models.DeleteSharedWallet(c.Request.Context(), id, sessionUserId(c)); err != nil {
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

func inviteToWalletHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		token, err := models.InviteToWallet(c.Request.Context(), id, sessionUserId(c))
		if err != nil {
			respondError(c, err, "could not create invite, try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"invite_token": token})
	}
}

type joinWalletRequest struct {
	InviteToken string `json:"invite_token" binding:"required"`
}

func joinWalletHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req joinWalletRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		wallet, err := models.JoinWallet(c.Request.Context(), req.InviteToken, sessionUserId(c))
		if err != nil {
			if errorsIsNotFound(err) {
				respondError(c, err, "")
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toWalletView(wallet))
	}
}

func leaveWalletHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := models.LeaveWallet(c.Request.Context(), id, sessionUserId(c)); err != nil {
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

func createWalletTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var input models.NewWalletTransaction
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		input.WalletId = id
		input.UserId = sessionUserId(c)
		tx, err := models.CreateWalletTransaction(c.Request.Context(), &input)
		if err != nil {
			if errorsIsNotFound(err) {
				respondError(c, err, "")
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, tx)
	}
}

func deleteWalletTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		txId, ok := idParam(c, "txId")
		if !ok {
			return
		}
		if err := models.DeleteWalletTransaction(c.Request.Context(), id, txId, sessionUserId(c)); err != nil {
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
