package controllers

import (
	"net/http"

	"github.com/Ayushyadav168/TradeFlow-Main/models"
	"github.com/Ayushyadav168/TradeFlow-Main/services"
	"github.com/Ayushyadav168/TradeFlow-Main/utils"

	"github.com/gin-gonic/gin"
)

// PaymentController exposes the payment order lifecycle over HTTP.
type PaymentController struct {
	topup *services.TopUpService
}

func NewPaymentController(topup *services.TopUpService) *PaymentController {
	return &PaymentController{topup: topup}
}

// createOrderRequest is the wire shape the checkout client sends: amount is
// already in paise and the receipt is pre-built by the client library.
type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	UserID   string `json:"userId"`
	Method   string `json:"method"`
}

// CreateOrder creates a payment order with the gateway and records the
// PENDING transaction for it.
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create-order body: %v", err)
		utils.PaymentError(c, http.StatusBadRequest, "Missing required fields", utils.ReasonMissingFields)
		return
	}

	if req.Amount == 0 || req.Currency == "" || req.Receipt == "" || req.UserID == "" {
		utils.LogError("Create-order request missing fields for user %q", req.UserID)
		utils.PaymentError(c, http.StatusBadRequest, "Missing required fields", utils.ReasonMissingFields)
		return
	}

	order, err := pc.topup.CreateGatewayOrder(c.Request.Context(),
		models.PaiseAmount(req.Amount), req.Currency, req.Receipt, req.UserID, req.Method)
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			if appErr.Reason == utils.ReasonOrderCreationFailed {
				utils.LogError("Gateway order creation failed for user %s: %v", req.UserID, err)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Failed to create payment order",
					"code":    appErr.Reason,
					"details": appErr.Err.Error(),
				})
				return
			}
			utils.PaymentError(c, appErr.Code, appErr.Message, appErr.Reason)
			return
		}
		utils.LogError("Order creation failed for user %s: %v", req.UserID, err)
		utils.InternalServerError(c, "Failed to create payment order", err.Error())
		return
	}

	utils.LogInfo("Order created: %s", order.ID)
	c.JSON(http.StatusOK, order)
}

// verifyRequest follows the gateway's own field naming for the completion
// callback payload.
type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyPayment authenticates a claimed-successful payment against the
// gateway signature and settles the matching transaction.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.NotVerified(c, http.StatusBadRequest, "Missing payment details", utils.ReasonMissingPaymentDetails, nil)
		return
	}

	err := pc.topup.VerifyPayment(c.Request.Context(),
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err == nil {
		utils.Verified(c, req.RazorpayOrderID, req.RazorpayPaymentID)
		return
	}

	if appErr := utils.GetAppError(err); appErr != nil {
		switch appErr.Reason {
		case utils.ReasonMissingPaymentDetails:
			utils.NotVerified(c, http.StatusBadRequest, "Missing payment details", appErr.Reason, nil)
			return
		case utils.ReasonSignatureMismatch:
			utils.NotVerified(c, http.StatusBadRequest, "Invalid payment signature", appErr.Reason, nil)
			return
		}
	}
	utils.LogError("Verification failed for order %s: %v", req.RazorpayOrderID, err)
	utils.NotVerified(c, http.StatusInternalServerError, "Payment verification failed", utils.ReasonPaymentFailed, err.Error())
}
