package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// dashboardStats returns the dashboard view for one calendar day
// (today when the date parameter is omitted)
func (h *Handler) dashboardStats(c *gin.Context) {
	asOf := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
			return
		}
		asOf = t
	}
	c.JSON(http.StatusOK, h.stats.DashboardStats(c.Request.Context(), asOf))
}

// dailyProductSales returns per-product quantities sold on one day
func (h *Handler) dailyProductSales(c *gin.Context) {
	date := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
			return
		}
		date = t
	}
	c.JSON(http.StatusOK, h.stats.DailyProductSales(c.Request.Context(), date))
}

// getStatements builds the per-customer statement report for the filter
func (h *Handler) getStatements(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.statements.BuildStatements(c.Request.Context(), filter))
}

// exportStatementsCSV streams the statement report as CSV: one block per
// customer with Date/Description/Billed/Paid rows, blank line between
// blocks. Formatting only; the numbers come straight from the report.
func (h *Handler) exportStatementsCSV(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter", "details": err.Error()})
		return
	}

	report := h.statements.BuildStatements(c.Request.Context(), filter)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="account-statement.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	for _, st := range report.Statements {
		_ = w.Write([]string{st.CustomerName})
		_ = w.Write([]string{"Date", "Description", "Billed", "Paid"})
		for _, tx := range st.Transactions {
			_ = w.Write([]string{
				tx.Date.Format("2006-01-02"),
				tx.Description,
				tx.Billed.StringFixed(2),
				tx.Paid.StringFixed(2),
			})
		}
		_ = w.Write([]string{fmt.Sprintf("Subtotal: Billed %s, Paid %s, Pending %s",
			st.TotalBilled.StringFixed(2), st.TotalPaid.StringFixed(2), st.Pending.StringFixed(2))})
		_ = w.Write([]string{})
	}
	w.Flush()
}
