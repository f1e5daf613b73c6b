package api

import (
	"net/http"

	"milk-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type createCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// createCustomer handles customer creation
func (h *Handler) createCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	customer, err := h.customers.AddCustomer(c.Request.Context(), req.Name, req.Phone, req.Address)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// listCustomers returns all customers
func (h *Handler) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.customers.ListCustomers(c.Request.Context()))
}

// getCustomer returns one customer with its maintained aggregates
func (h *Handler) getCustomer(c *gin.Context) {
	customer, err := h.customers.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// updateCustomer handles partial contact-field updates
func (h *Handler) updateCustomer(c *gin.Context) {
	var upd service.CustomerUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	customer, err := h.customers.UpdateCustomer(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// deleteCustomer deletes a customer and cascades to their orders
func (h *Handler) deleteCustomer(c *gin.Context) {
	if err := h.customers.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// customerLedger returns the lifetime running balance for one customer
func (h *Handler) customerLedger(c *gin.Context) {
	entries, err := h.statements.CustomerLedger(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
