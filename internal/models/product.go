// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Genre       string         `json:"genre" gorm:"size:100;index"`
	Category    string         `json:"category" gorm:"size:100;index"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Rating      float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	SupportTag  SupportTag     `json:"support_tag" gorm:"type:varchar(20);default:'none'"`
	ImageURL    string         `json:"image_url" gorm:"size:512"`
	Tags        pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`
}
