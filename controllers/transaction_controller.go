package controllers

import (
	"net/http"

	"github.com/Ayushyadav168/TradeFlow-Main/utils"

	"github.com/gin-gonic/gin"
)

// ListTransactions returns a user's top-up attempts, newest first.
func (pc *PaymentController) ListTransactions(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID required"})
		return
	}

	txns, err := pc.topup.Transactions(c.Request.Context(), userID)
	if err != nil {
		utils.LogError("Failed to fetch transactions for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, txns)
}

// GetBalance returns the account balance derived from verified top-ups.
func (pc *PaymentController) GetBalance(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID required"})
		return
	}

	bal, err := pc.topup.Balance(c.Request.Context(), userID)
	if err != nil {
		utils.LogError("Failed to fetch balance for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":     bal.Balance,
		"currency":    bal.Currency,
		"lastUpdated": bal.LastUpdated,
	})
}
