// internal/services/order_service.go
package services

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lweber/gameshop-backend/internal/apperrors"
	"github.com/lweber/gameshop-backend/internal/export"
	"github.com/lweber/gameshop-backend/internal/models"
	"github.com/lweber/gameshop-backend/internal/repository"
	"github.com/lweber/gameshop-backend/internal/utils"
)

// totalTolerance absorbs float rounding between the client's claimed
// total and the recomputed one.
const totalTolerance = 0.01

type OrderService struct {
	orders        *repository.Repository[models.Order]
	items         *repository.Repository[models.OrderItem]
	notifications *NotificationService
}

type CreateOrderRequest struct {
	CustomerName  string                `json:"customer_name" validate:"required"`
	CustomerEmail string                `json:"customer_email" validate:"required,email"`
	CardNumber    *string               `json:"card_number,omitempty"`
	CardExpiry    *string               `json:"card_expiry,omitempty"`
	CardCVV       *string               `json:"card_cvv,omitempty"`
	Phone         *string               `json:"phone,omitempty"`
	PaymentMethod *models.PaymentMethod `json:"payment_method,omitempty"`
	Items         []CartItem            `json:"items" validate:"dive"`
	TotalAmount   float64               `json:"total_amount" validate:"gte=0"`
}

// CartItem quantity is declared as float64 so a non-integer submission
// is rejected instead of silently truncated by JSON binding.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Title     string    `json:"title"`
	Price     float64   `json:"price" validate:"gte=0"`
	Quantity  float64   `json:"quantity"`
}

func NewOrderService(db *gorm.DB, notifications *NotificationService) *OrderService {
	return &OrderService{
		orders:        repository.New[models.Order](db),
		items:         repository.New[models.OrderItem](db),
		notifications: notifications,
	}
}

// CreateOrder validates the cart, persists the order header and its line
// items in one transaction, dispatches the confirmation mails without
// waiting for them and returns the order re-read with its items.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest, code *models.AccessCode) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if len(req.Items) == 0 {
		return nil, apperrors.Validation("Cart cannot be empty")
	}

	for _, item := range req.Items {
		if item.Quantity < 1 || item.Quantity != math.Trunc(item.Quantity) {
			return nil, apperrors.Validation("Item quantity must be a positive integer")
		}
	}

	var calculatedTotal float64
	for _, item := range req.Items {
		calculatedTotal += item.Price * item.Quantity
	}
	if math.Abs(calculatedTotal-req.TotalAmount) > totalTolerance {
		return nil, apperrors.Validationf("Total amount mismatch. Expected €%.2f, received €%.2f",
			calculatedTotal, req.TotalAmount)
	}

	order := &models.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CardNumber:    req.CardNumber,
		CardExpiry:    req.CardExpiry,
		CardCVV:       req.CardCVV,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
		Code:          code.Code,
		TotalAmount:   req.TotalAmount,
		AssignedTo:    code.AssignedTo,
	}

	// Header and line items share one transactional boundary so a failed
	// item insert never leaves an orphan order behind.
	err := s.orders.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}

		lineItems := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			lineItems = append(lineItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  int(item.Quantity),
			})
		}

		return s.items.WithTx(tx).CreateAll(ctx, lineItems)
	})
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: mail outcome never reaches the caller.
	go s.dispatchOrderMails(order, req.Items)

	return s.orders.GetByID(ctx, order.ID, "Items", "Items.Product")
}

func (s *OrderService) dispatchOrderMails(order *models.Order, cart []CartItem) {
	items := make([]OrderEmailItem, 0, len(cart))
	for _, item := range cart {
		items = append(items, OrderEmailItem{
			Title:    item.Title,
			Price:    item.Price,
			Quantity: int(item.Quantity),
		})
	}

	if err := s.notifications.SendOrderConfirmation(order, items); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to send order confirmation email")
	}

	if err := s.notifications.SendOrderAlert(order, items); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to send order alert email")
	}
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.GetByID(ctx, id, "Items", "Items.Product")
}

func (s *OrderService) SearchOrders(ctx context.Context, filter repository.OrderFilter, q repository.PageQuery) (*repository.PageResult[models.Order], error) {
	q.Preloads = append(q.Preloads, "Items")
	return s.orders.PaginatedSearch(ctx, filter, q)
}

func (s *OrderService) CountOrders(ctx context.Context, filter repository.OrderFilter) (int64, error) {
	return s.orders.Count(ctx, filter)
}

func (s *OrderService) ExportOrders(ctx context.Context, format export.Format, filter repository.OrderFilter, sink export.Sink) error {
	orders, err := s.orders.Search(ctx, filter, repository.ListQuery{OrderBy: "created_at asc"})
	if err != nil {
		return err
	}

	return export.Export(format, orders, export.Options{EntityName: "orders"}, sink)
}
