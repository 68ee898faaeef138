package main

import (
	"log"

	"github.com/Ayushyadav168/TradeFlow-Main/config"
	"github.com/Ayushyadav168/TradeFlow-Main/controllers"
	"github.com/Ayushyadav168/TradeFlow-Main/gateway"
	"github.com/Ayushyadav168/TradeFlow-Main/routes"
	"github.com/Ayushyadav168/TradeFlow-Main/services"
	"github.com/Ayushyadav168/TradeFlow-Main/store"
	"github.com/Ayushyadav168/TradeFlow-Main/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Pick the ledger: in-memory by default, postgres when LEDGER_DSN is set.
	var ledger store.TransactionLedger = store.NewMemoryLedger()
	if cfg.LedgerDSN != "" {
		if err := config.InitDB(); err != nil {
			utils.LogError("Error initializing ledger database: %v", err)
			log.Fatal("Error initializing ledger database:", err)
		}
		ledger = store.NewGormLedger(config.DB)
		utils.LogInfo("Using postgres-backed transaction ledger")
	} else {
		utils.LogInfo("Using in-memory transaction ledger (state resets on restart)")
	}

	// Gateway client, verifier and event publisher
	client := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	verifier := gateway.NewSignatureVerifier(cfg.RazorpayKeySecret)
	events := services.NewEventPublisher(cfg.KafkaBrokers)
	defer events.Close()

	topup := services.NewTopUpService(client, verifier, ledger, events, client.KeyID())
	pc := controllers.NewPaymentController(topup)

	// Set up router (middleware included)
	router := routes.SetupRouter(pc)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
