// internal/models/access_code.go
package models

// AccessCode is the authentication principal: a valid code is what
// "logs in", and every order it creates carries its assignment label.
type AccessCode struct {
	BaseModel
	Code       string  `json:"code" gorm:"size:100;not null;uniqueIndex"`
	Discount   float64 `json:"discount" gorm:"type:decimal(5,2);default:0"`
	AssignedTo string  `json:"assigned_to" gorm:"size:255"`
}
