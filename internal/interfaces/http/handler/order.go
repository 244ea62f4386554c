package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/application/checkout"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/interfaces/http/dto"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *checkout.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *checkout.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Place converts the authenticated user's cart into an order
func (h *OrderHandler) Place(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListMine returns the authenticated user's orders, newest first
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// Get returns a single order; owners see their own, admins any
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

type listOrdersQuery struct {
	dto.ListRequest
	Status string `form:"status"`
}

// ListAll returns all orders with optional status filter (admin only)
func (h *OrderHandler) ListAll(c *gin.Context) {
	var query listOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}
	query.Normalize()

	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	}
	if query.Status != "" {
		filter.Filters = map[string]interface{}{"status": query.Status}
	}

	orders, total, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, query.Page, query.PageSize)
}

// UpdateStatus advances an order through its lifecycle (admin only)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req checkout.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), middleware.IsAdmin(c), orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
