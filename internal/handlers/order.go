// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lweber/gameshop-backend/internal/export"
	"github.com/lweber/gameshop-backend/internal/middleware"
	"github.com/lweber/gameshop-backend/internal/repository"
	"github.com/lweber/gameshop-backend/internal/services"
	"github.com/lweber/gameshop-backend/internal/utils"
)

var orderSortFields = []string{"created_at", "updated_at", "customer_name", "total_amount"}

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func orderFilterFromQuery(c *gin.Context) repository.OrderFilter {
	return repository.OrderFilter{
		CustomerName:  c.Query("customer_name"),
		CustomerEmail: c.Query("customer_email"),
		Code:          c.Query("code"),
		AssignedTo:    c.Query("assigned_to"),
		PaymentMethod: c.Query("payment_method"),
	}
}

// orderSearchFilter fans a bare "search" term out for the fuzzy listing;
// exports filter exactly and skip the fan-out.
func orderSearchFilter(c *gin.Context) repository.OrderFilter {
	filter := orderFilterFromQuery(c)
	if term := c.Query("search"); term != "" {
		filter.CustomerName = term
		filter.CustomerEmail = term
		filter.Code = term
	}
	return filter
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	code, ok := middleware.GetAccessCode(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req, code)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.orderService.SearchOrders(c.Request.Context(), orderSearchFilter(c), repository.PageQuery{
		Page:    params.Page,
		Take:    params.Take,
		OrderBy: params.OrderBy(orderSortFields),
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// GET /orders/export?format=csv
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	err = h.orderService.ExportOrders(c.Request.Context(), format, orderFilterFromQuery(c), responseSink{c})
	if err != nil {
		utils.AppErrorResponse(c, err)
	}
}
