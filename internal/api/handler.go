package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"milk-ledger/internal/models"
	"milk-ledger/internal/service"
	"milk-ledger/internal/store"
	"milk-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog    *service.CatalogService
	customers  *service.CustomerService
	orders     *service.OrderService
	payments   *service.PaymentService
	stats      *service.StatsService
	statements *service.StatementService
	auth       *service.AuthService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	customers *service.CustomerService,
	orders *service.OrderService,
	payments *service.PaymentService,
	stats *service.StatsService,
	statements *service.StatementService,
	auth *service.AuthService,
) *Handler {
	return &Handler{
		catalog:    catalog,
		customers:  customers,
		orders:     orders,
		payments:   payments,
		stats:      stats,
		statements: statements,
		auth:       auth,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/signup", h.signup)
		v1.POST("/auth/login", h.login)

		v1.POST("/products", h.createProduct)
		v1.GET("/products", h.listProducts)
		v1.PUT("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.POST("/customers", h.createCustomer)
		v1.GET("/customers", h.listCustomers)
		v1.GET("/customers/:id", h.getCustomer)
		v1.PUT("/customers/:id", h.updateCustomer)
		v1.DELETE("/customers/:id", h.deleteCustomer)
		v1.GET("/customers/:id/ledger", h.customerLedger)

		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.PUT("/orders/:id", h.updateOrder)
		v1.DELETE("/orders/:id", h.deleteOrder)

		v1.POST("/payments", h.createPayment)
		v1.GET("/payments", h.listPayments)

		v1.GET("/dashboard/stats", h.dashboardStats)
		v1.GET("/dashboard/product-sales", h.dailyProductSales)

		v1.GET("/statements", h.getStatements)
		v1.GET("/statements/export.csv", h.exportStatementsCSV)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// writeError maps service/store errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "details": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "details": err.Error()})
	}
}

// parseDate accepts RFC3339 timestamps or plain yyyy-mm-dd dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseFilter reads the recognized filter criteria from query parameters.
// A date-only date_to bounds at midnight, matching the form inputs the
// statement view sends; callers wanting a full day pass a timestamp.
func parseFilter(c *gin.Context) (models.Filter, error) {
	var f models.Filter
	if v := c.Query("date_from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, err
		}
		f.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, err
		}
		f.DateTo = &t
	}
	f.CustomerID = c.Query("customer_id")
	f.ProductID = c.Query("product_id")
	f.Status = c.Query("status")
	return f, nil
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
