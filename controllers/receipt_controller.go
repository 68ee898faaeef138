package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Ayushyadav168/TradeFlow-Main/models"
	"github.com/Ayushyadav168/TradeFlow-Main/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadReceipt generates and returns a PDF receipt for a successful
// top-up transaction.
func (pc *PaymentController) DownloadReceipt(c *gin.Context) {
	utils.LogInfo("Starting receipt download process")

	txnID := c.Param("id")
	txn, err := pc.topup.Ledger().ByID(c.Request.Context(), txnID)
	if err != nil {
		utils.LogError("Transaction not found for receipt download: %s", txnID)
		utils.NotFound(c, "Transaction not found")
		return
	}
	if txn.Status != models.TransactionStatusSuccess {
		utils.LogError("Receipt requested for unsettled transaction %s (status %s)", txnID, txn.Status)
		utils.BadRequest(c, "Receipt is only available for successful top-ups", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Platform info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "TradeFlow")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Trading Account Services")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@tradeflow.in")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "TOP-UP RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Transaction ID: "+txn.ID)
	pdf.Ln(8)
	pdf.Cell(60, 8, "Date: "+txn.Timestamp.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(60, 8, "User ID: "+txn.UserID)
	pdf.Ln(10)

	// Payment details table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(60, 8, "Field", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 8, "Value", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	rows := [][2]string{
		{"Order ID", txn.OrderID},
		{"Payment ID", txn.PaymentID},
		{"Method", txn.Method},
		{"Reference", txn.Receipt},
		{"Status", txn.Status},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 8, row[1], "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(120, 10, "Amount Credited:", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("Rs. %d", txn.Amount), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for trading with TradeFlow!")

	var buf bytes.Buffer
	_ = pdf.Output(&buf)
	utils.LogInfo("PDF receipt generated for transaction %s", txn.ID)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=receipt.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
