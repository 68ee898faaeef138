package controllers

import (
	"fmt"

	"github.com/Ayushyadav168/TradeFlow-Main/models"
	"github.com/Ayushyadav168/TradeFlow-Main/utils"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// ExportTransactions downloads a user's top-up history as an Excel sheet.
func (pc *PaymentController) ExportTransactions(c *gin.Context) {
	utils.LogInfo("ExportTransactions called")

	userID := c.Query("userId")
	if userID == "" {
		utils.BadRequest(c, "User ID required", nil)
		return
	}

	txns, err := pc.topup.Transactions(c.Request.Context(), userID)
	if err != nil {
		utils.LogError("Failed to fetch transactions for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Exporting %d transactions for user %s", len(txns), userID)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Top-up History")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("TRADEFLOW - Top-up History")
	userRow := sheet.AddRow()
	userRow.AddCell().SetString("User: " + userID)
	sheet.AddRow() // spacing

	headers := []string{"Transaction ID", "Order ID", "Payment ID", "Date", "Amount (₹)", "Method", "Status", "Reference"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var credited models.RupeeAmount
	for _, txn := range txns {
		row := sheet.AddRow()
		row.AddCell().SetString(txn.ID)
		row.AddCell().SetString(txn.OrderID)
		row.AddCell().SetString(txn.PaymentID)
		row.AddCell().SetString(txn.Timestamp.Format("2006-01-02 15:04"))
		row.AddCell().SetInt64(int64(txn.Amount))
		row.AddCell().SetString(txn.Method)
		row.AddCell().SetString(txn.Status)
		row.AddCell().SetString(txn.Receipt)
		if txn.Status == models.TransactionStatusSuccess {
			credited += txn.Amount
		}
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Total Credited")
	summaryRow.AddCell().SetInt64(int64(credited))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=topups_%s.xlsx", userID))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Exported top-up history for user %s", userID)
}
