package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ayushyadav168/TradeFlow-Main/controllers"
	"github.com/Ayushyadav168/TradeFlow-Main/gateway"
	"github.com/Ayushyadav168/TradeFlow-Main/models"
	"github.com/Ayushyadav168/TradeFlow-Main/routes"
	"github.com/Ayushyadav168/TradeFlow-Main/services"
	"github.com/Ayushyadav168/TradeFlow-Main/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s8cKPbTGISIrraI5ywf37IRk"

type fakeOrderCreator struct {
	fail  bool
	calls int
}

func (f *fakeOrderCreator) CreateOrder(ctx context.Context, amount models.PaiseAmount, currency, receipt, userID string) (*models.PaymentOrder, error) {
	if f.fail {
		return nil, errors.New("gateway unreachable")
	}
	f.calls++
	return &models.PaymentOrder{
		ID:        fmt.Sprintf("order_%d", f.calls),
		Amount:    amount,
		Currency:  currency,
		Receipt:   receipt,
		Status:    "created",
		CreatedAt: time.Now().Unix(),
	}, nil
}

func newTestRouter(orders gateway.OrderCreator) (*gin.Engine, *gateway.SignatureVerifier) {
	gin.SetMode(gin.TestMode)
	verifier := gateway.NewSignatureVerifier(testSecret)
	svc := services.NewTopUpService(orders, verifier, store.NewMemoryLedger(), nil, "rzp_test_key")
	return routes.SetupRouter(controllers.NewPaymentController(svc)), verifier
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func createOrderBody(paise int64) map[string]interface{} {
	return map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  "topup_u1_1700000000000",
		"userId":   "u1",
		"method":   "upi",
	}
}

func TestRouterRunsMiddleware(t *testing.T) {
	router, _ := newTestRouter(&fakeOrderCreator{})

	w := doJSON(router, http.MethodGet, "/v1/account/balance?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	// CORS preflight short-circuits before any handler.
	w = doJSON(router, http.MethodOptions, "/v1/payments/create-order", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestCreateOrderMissingFields(t *testing.T) {
	router, _ := newTestRouter(&fakeOrderCreator{})

	for name, body := range map[string]map[string]interface{}{
		"empty body":    {},
		"no amount":     {"currency": "INR", "receipt": "r1", "userId": "u1"},
		"no userId":     {"amount": 500000, "currency": "INR", "receipt": "r1"},
		"no receipt":    {"amount": 500000, "currency": "INR", "userId": "u1"},
		"zero amount":   {"amount": 0, "currency": "INR", "receipt": "r1", "userId": "u1"},
		"no currency":   {"amount": 500000, "receipt": "r1", "userId": "u1"},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/v1/payments/create-order", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w)
			assert.Equal(t, "Missing required fields", resp["error"])
			assert.Equal(t, "MISSING_FIELDS", resp["code"])
		})
	}
}

func TestCreateOrderAmountBounds(t *testing.T) {
	router, _ := newTestRouter(&fakeOrderCreator{})

	cases := []struct {
		paise      int64
		wantStatus int
		wantCode   string
	}{
		{99, http.StatusBadRequest, "AMOUNT_TOO_LOW"},
		{100, http.StatusOK, ""},
		{20000000, http.StatusOK, ""},
		{20000001, http.StatusBadRequest, "AMOUNT_TOO_HIGH"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d paise", tc.paise), func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/v1/payments/create-order", createOrderBody(tc.paise))
			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, decode(t, w)["code"])
			}
		})
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	router, _ := newTestRouter(&fakeOrderCreator{})

	w := doJSON(router, http.MethodPost, "/v1/payments/create-order", createOrderBody(500000))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "order_1", resp["id"])
	assert.Equal(t, float64(500000), resp["amount"])
	assert.Equal(t, "INR", resp["currency"])
	assert.Equal(t, "topup_u1_1700000000000", resp["receipt"])
	assert.Equal(t, "created", resp["status"])
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	router, _ := newTestRouter(&fakeOrderCreator{fail: true})

	w := doJSON(router, http.MethodPost, "/v1/payments/create-order", createOrderBody(500000))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Failed to create payment order", resp["error"])
	assert.Equal(t, "ORDER_CREATION_FAILED", resp["code"])
	assert.Contains(t, resp["details"], "gateway unreachable")
}

func TestVerifyPayment(t *testing.T) {
	router, verifier := newTestRouter(&fakeOrderCreator{})

	w := doJSON(router, http.MethodPost, "/v1/payments/create-order", createOrderBody(500000))
	require.Equal(t, http.StatusOK, w.Code)
	orderID := decode(t, w)["id"].(string)

	verifyBody := map[string]string{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  verifier.Expected(orderID, "pay_123"),
	}

	w = doJSON(router, http.MethodPost, "/v1/payments/verify", verifyBody)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["verified"])
	assert.Equal(t, "Payment verified successfully", resp["message"])
	assert.Equal(t, "pay_123", resp["payment_id"])
	assert.Equal(t, orderID, resp["order_id"])

	// Verification is stateless: replaying the same payload verifies again.
	w = doJSON(router, http.MethodPost, "/v1/payments/verify", verifyBody)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["verified"])
}

func TestVerifyPaymentInvalidSignature(t *testing.T) {
	router, verifier := newTestRouter(&fakeOrderCreator{})

	w := doJSON(router, http.MethodPost, "/v1/payments/verify", map[string]string{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  verifier.Expected("order_1", "pay_other"),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["verified"])
	assert.Equal(t, "Invalid payment signature", resp["error"])
	assert.Equal(t, "SIGNATURE_MISMATCH", resp["code"])
}

func TestVerifyPaymentMissingDetails(t *testing.T) {
	router, _ := newTestRouter(&fakeOrderCreator{})

	for name, body := range map[string]map[string]string{
		"no signature":  {"razorpay_order_id": "order_1", "razorpay_payment_id": "pay_123"},
		"no payment id": {"razorpay_order_id": "order_1", "razorpay_signature": "deadbeef"},
		"empty":         {},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/v1/payments/verify", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w)
			assert.Equal(t, false, resp["verified"])
			assert.Equal(t, "Missing payment details", resp["error"])
			assert.Equal(t, "MISSING_PAYMENT_DETAILS", resp["code"])
		})
	}
}

func TestListTransactions(t *testing.T) {
	router, _ := newTestRouter(&fakeOrderCreator{})

	w := doJSON(router, http.MethodGet, "/v1/payments/transactions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID required", decode(t, w)["error"])

	require.Equal(t, http.StatusOK,
		doJSON(router, http.MethodPost, "/v1/payments/create-order", createOrderBody(100000)).Code)
	require.Equal(t, http.StatusOK,
		doJSON(router, http.MethodPost, "/v1/payments/create-order", createOrderBody(250000)).Code)

	w = doJSON(router, http.MethodGet, "/v1/payments/transactions?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txns []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txns))
	require.Len(t, txns, 2)
	// Newest first.
	assert.Equal(t, "order_2", txns[0]["orderId"])
	assert.Equal(t, float64(2500), txns[0]["amount"])
	assert.Equal(t, "order_1", txns[1]["orderId"])
	assert.Equal(t, "PENDING", txns[0]["status"])
}

func TestGetBalance(t *testing.T) {
	router, verifier := newTestRouter(&fakeOrderCreator{})

	w := doJSON(router, http.MethodGet, "/v1/account/balance", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/v1/account/balance?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["balance"])

	w = doJSON(router, http.MethodPost, "/v1/payments/create-order", createOrderBody(500000))
	require.Equal(t, http.StatusOK, w.Code)
	orderID := decode(t, w)["id"].(string)
	w = doJSON(router, http.MethodPost, "/v1/payments/verify", map[string]string{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  verifier.Expected(orderID, "pay_123"),
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/v1/account/balance?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, float64(5000), resp["balance"])
	assert.Equal(t, "INR", resp["currency"])
}
