// internal/repository/filter.go
package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Filter is a typed, explicitly enumerated predicate for one entity kind.
// Apply narrows a query with AND-combined exact matches; ApplyFuzzy widens
// it to OR-combined case-insensitive substring matches over the same fields.
type Filter interface {
	Apply(tx *gorm.DB) *gorm.DB
	ApplyFuzzy(tx *gorm.DB) *gorm.DB
	IsZero() bool
}

type fieldMatch struct {
	Column string
	Value  string
}

func applyExact(tx *gorm.DB, fields []fieldMatch) *gorm.DB {
	for _, f := range fields {
		tx = tx.Where(f.Column+" = ?", f.Value)
	}
	return tx
}

func applyFuzzy(tx *gorm.DB, fields []fieldMatch) *gorm.DB {
	if len(fields) == 0 {
		return tx
	}

	conditions := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		conditions = append(conditions, "LOWER("+f.Column+") LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Value)+"%")
	}

	return tx.Where(strings.Join(conditions, " OR "), args...)
}

type ProductFilter struct {
	Title       string
	Description string
	Genre       string
	Category    string
	SupportTag  string
}

func (f ProductFilter) fields() []fieldMatch {
	var fields []fieldMatch
	if f.Title != "" {
		fields = append(fields, fieldMatch{"title", f.Title})
	}
	if f.Description != "" {
		fields = append(fields, fieldMatch{"description", f.Description})
	}
	if f.Genre != "" {
		fields = append(fields, fieldMatch{"genre", f.Genre})
	}
	if f.Category != "" {
		fields = append(fields, fieldMatch{"category", f.Category})
	}
	if f.SupportTag != "" {
		fields = append(fields, fieldMatch{"support_tag", f.SupportTag})
	}
	return fields
}

func (f ProductFilter) Apply(tx *gorm.DB) *gorm.DB      { return applyExact(tx, f.fields()) }
func (f ProductFilter) ApplyFuzzy(tx *gorm.DB) *gorm.DB { return applyFuzzy(tx, f.fields()) }
func (f ProductFilter) IsZero() bool                    { return len(f.fields()) == 0 }

type AccessCodeFilter struct {
	Code       string
	AssignedTo string
}

func (f AccessCodeFilter) fields() []fieldMatch {
	var fields []fieldMatch
	if f.Code != "" {
		fields = append(fields, fieldMatch{"code", f.Code})
	}
	if f.AssignedTo != "" {
		fields = append(fields, fieldMatch{"assigned_to", f.AssignedTo})
	}
	return fields
}

func (f AccessCodeFilter) Apply(tx *gorm.DB) *gorm.DB      { return applyExact(tx, f.fields()) }
func (f AccessCodeFilter) ApplyFuzzy(tx *gorm.DB) *gorm.DB { return applyFuzzy(tx, f.fields()) }
func (f AccessCodeFilter) IsZero() bool                    { return len(f.fields()) == 0 }

type OrderFilter struct {
	CustomerName  string
	CustomerEmail string
	Code          string
	AssignedTo    string
	PaymentMethod string
}

func (f OrderFilter) fields() []fieldMatch {
	var fields []fieldMatch
	if f.CustomerName != "" {
		fields = append(fields, fieldMatch{"customer_name", f.CustomerName})
	}
	if f.CustomerEmail != "" {
		fields = append(fields, fieldMatch{"customer_email", f.CustomerEmail})
	}
	if f.Code != "" {
		fields = append(fields, fieldMatch{"code", f.Code})
	}
	if f.AssignedTo != "" {
		fields = append(fields, fieldMatch{"assigned_to", f.AssignedTo})
	}
	if f.PaymentMethod != "" {
		fields = append(fields, fieldMatch{"payment_method", f.PaymentMethod})
	}
	return fields
}

func (f OrderFilter) Apply(tx *gorm.DB) *gorm.DB      { return applyExact(tx, f.fields()) }
func (f OrderFilter) ApplyFuzzy(tx *gorm.DB) *gorm.DB { return applyFuzzy(tx, f.fields()) }
func (f OrderFilter) IsZero() bool                    { return len(f.fields()) == 0 }

// None matches everything; useful for count/export over a whole entity.
type None struct{}

func (None) Apply(tx *gorm.DB) *gorm.DB      { return tx }
func (None) ApplyFuzzy(tx *gorm.DB) *gorm.DB { return tx }
func (None) IsZero() bool                    { return true }
