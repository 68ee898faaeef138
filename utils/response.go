package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StandardResponse represents the standard API response structure
type StandardResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error sends a standardized error response
func Error(c *gin.Context, statusCode int, message string, err interface{}) {
	response := StandardResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		response.Data = gin.H{"error": err}
	}
	c.JSON(statusCode, response)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string, err interface{}) {
	Error(c, http.StatusBadRequest, message, err)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string, err interface{}) {
	Error(c, http.StatusInternalServerError, message, err)
}

// The payment endpoints keep the gateway-facing wire shapes flat so existing
// checkout clients keep working; a reason code rides along for callers that
// match on it.

// PaymentError sends a flat payment-API error with its reason code.
func PaymentError(c *gin.Context, statusCode int, message, reason string) {
	c.JSON(statusCode, gin.H{
		"error": message,
		"code":  reason,
	})
}

// Verified sends the canonical verification success response.
func Verified(c *gin.Context, orderID, paymentID string) {
	c.JSON(http.StatusOK, gin.H{
		"verified":   true,
		"message":    "Payment verified successfully",
		"payment_id": paymentID,
		"order_id":   orderID,
	})
}

// NotVerified sends a verification failure response.
func NotVerified(c *gin.Context, statusCode int, message, reason string, details interface{}) {
	body := gin.H{
		"verified": false,
		"error":    message,
		"code":     reason,
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(statusCode, body)
}
