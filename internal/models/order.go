// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order owns its items by composition: header and items are created
// together and are immutable in the normal flow.
type Order struct {
	BaseModel
	CustomerName  string         `json:"customer_name" gorm:"size:255;not null"`
	CustomerEmail string         `json:"customer_email" gorm:"size:255;not null"`
	CardNumber    *string        `json:"card_number,omitempty" gorm:"size:32"`
	CardExpiry    *string        `json:"card_expiry,omitempty" gorm:"size:8"`
	CardCVV       *string        `json:"card_cvv,omitempty" gorm:"size:8"`
	Phone         *string        `json:"phone,omitempty" gorm:"size:32"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty" gorm:"type:varchar(20)"`
	Code          string         `json:"code" gorm:"size:100;not null;index"`
	TotalAmount   float64        `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	AssignedTo    string         `json:"assigned_to" gorm:"size:255;index"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
