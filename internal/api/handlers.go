package api

import (
	"github.com/gin-gonic/gin"

	"github.com/shopbot/goshop/internal/domain"
	"github.com/shopbot/goshop/internal/engine"
	"github.com/shopbot/goshop/internal/metrics"
)

// orderResponse is the transport shape for single-order operations.
type orderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	OrderID string        `json:"order_id,omitempty"`
	Order   *domain.Order `json:"order,omitempty"`
}

// listResponse always carries an orders array, [] when empty.
type listResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Orders  []domain.Order `json:"orders"`
}

func toOrderResponse(res engine.Result) orderResponse {
	return orderResponse{
		Success: res.Success,
		Message: res.Message,
		OrderID: res.OrderID,
		Order:   res.Order,
	}
}

func (s *Server) rejectBody(c *gin.Context, errorType, message string) {
	s.reg.IncCounter(metrics.APIErrorsTotal, metrics.Labels{
		"endpoint":   endpointLabel(c),
		"error_type": errorType,
	})
	c.JSON(400, gin.H{"success": false, "message": message})
}

func (s *Server) handleHome(c *gin.Context) {
	c.String(200, "Welcome to the Order Management API!")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy", "message": "Order API is operational."})
}

func (s *Server) handleOrderCreate(c *gin.Context) {
	var input engine.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.rejectBody(c, "empty_payload", "Invalid request. Body must be JSON.")
		return
	}
	res := s.engine.CreateOrder(input)
	c.JSON(res.StatusCode, toOrderResponse(res))
}

func (s *Server) handleOrdersList(c *gin.Context) {
	res := s.engine.ListAllOrders()
	orders := res.Orders
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(res.StatusCode, listResponse{
		Success: res.Success,
		Message: res.Message,
		Orders:  orders,
	})
}

func (s *Server) handleOrderGet(c *gin.Context) {
	res := s.engine.GetOrderDetails(c.Param("orderID"))
	c.JSON(res.StatusCode, toOrderResponse(res))
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleOrderStatusUpdate(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		s.rejectBody(c, "missing_status", "New status is required in the request body.")
		return
	}
	res := s.engine.UpdateOrderStatus(c.Param("orderID"), req.Status)
	c.JSON(res.StatusCode, toOrderResponse(res))
}

func (s *Server) handleOrderPatch(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		s.rejectBody(c, "empty_patch_payload", "Invalid PATCH request. Body must be JSON with fields to update.")
		return
	}
	res := s.engine.UpdateOrderGeneric(c.Param("orderID"), fields)
	c.JSON(res.StatusCode, toOrderResponse(res))
}
