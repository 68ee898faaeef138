package routes

import (
	"github.com/Ayushyadav168/TradeFlow-Main/controllers"
	"github.com/Ayushyadav168/TradeFlow-Main/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(pc *controllers.PaymentController) *gin.Engine {
	router := gin.New()

	// Middleware goes on before any route: gin freezes each route's handler
	// chain at registration time.
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// API version group
	api := router.Group("/v1")
	{
		payments := api.Group("/payments")
		{
			payments.POST("/create-order", pc.CreateOrder)
			payments.POST("/verify", pc.VerifyPayment)
			payments.GET("/transactions", pc.ListTransactions)
			payments.GET("/transactions/export", pc.ExportTransactions)
			payments.GET("/transactions/:id/receipt", pc.DownloadReceipt)
		}

		account := api.Group("/account")
		{
			account.GET("/balance", pc.GetBalance)
		}
	}

	return router
}
