package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/Ayushyadav168/TradeFlow-Main/utils"
)

// SignatureVerifier authenticates a claimed-successful payment. The three
// inputs arrive over an HTTP boundary the client fully controls, so the
// gateway signature is the sole signal trusted for balance-affecting state.
type SignatureVerifier struct {
	secret []byte
}

func NewSignatureVerifier(keySecret string) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(keySecret)}
}

// Expected computes the gateway's signature for an order/payment pair:
// hex(HMAC-SHA256(secret, orderId + "|" + paymentId)). The "|" delimiter is
// part of the gateway's contract; it must match byte-for-byte.
func (v *SignatureVerifier) Expected(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature and compares it to the supplied one in
// constant time. It is a pure function of its inputs: verifying the same
// triple twice gives the same answer both times.
func (v *SignatureVerifier) Verify(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return utils.VerificationFailed(utils.ReasonMissingPaymentDetails, "Missing payment details")
	}
	expected := v.Expected(orderID, paymentID)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return utils.VerificationFailed(utils.ReasonSignatureMismatch, "Invalid payment signature")
	}
	return nil
}
