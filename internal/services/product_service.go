// internal/services/product_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lweber/gameshop-backend/internal/apperrors"
	"github.com/lweber/gameshop-backend/internal/export"
	"github.com/lweber/gameshop-backend/internal/models"
	"github.com/lweber/gameshop-backend/internal/repository"
	"github.com/lweber/gameshop-backend/internal/utils"
)

type ProductService struct {
	products *repository.Repository[models.Product]
}

type CreateProductRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=255"`
	Description string            `json:"description"`
	Genre       string            `json:"genre"`
	Category    string            `json:"category"`
	Price       float64           `json:"price" validate:"gte=0"`
	Rating      float64           `json:"rating" validate:"gte=0,lte=5"`
	SupportTag  models.SupportTag `json:"support_tag"`
	ImageURL    string            `json:"image_url"`
	Tags        []string          `json:"tags,omitempty"`
}

type UpdateProductRequest struct {
	Title       string            `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description string            `json:"description,omitempty"`
	Genre       string            `json:"genre,omitempty"`
	Category    string            `json:"category,omitempty"`
	Price       *float64          `json:"price,omitempty" validate:"omitempty,gte=0"`
	Rating      *float64          `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	SupportTag  models.SupportTag `json:"support_tag,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		products: repository.New[models.Product](db),
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	supportTag := req.SupportTag
	if supportTag == "" {
		supportTag = models.SupportTagNone
	}

	product := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Category:    req.Category,
		Price:       req.Price,
		Rating:      req.Rating,
		SupportTag:  supportTag,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Genre != "" {
		updates["genre"] = req.Genre
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.SupportTag != "" {
		updates["support_tag"] = req.SupportTag
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}

	if len(updates) > 0 {
		if err := s.products.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.products.GetByID(ctx, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

// SearchProducts runs the fuzzy paginated search; an empty filter lists
// everything.
func (s *ProductService) SearchProducts(ctx context.Context, filter repository.ProductFilter, q repository.PageQuery) (*repository.PageResult[models.Product], error) {
	return s.products.PaginatedSearch(ctx, filter, q)
}

// FindProducts is the exact-match surface for callers that want precise
// filters instead of fuzzy matching.
func (s *ProductService) FindProducts(ctx context.Context, filter repository.ProductFilter, q repository.ListQuery) ([]models.Product, error) {
	return s.products.Search(ctx, filter, q)
}

func (s *ProductService) CountProducts(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	return s.products.Count(ctx, filter)
}

func (s *ProductService) ExportProducts(ctx context.Context, format export.Format, filter repository.ProductFilter, sink export.Sink) error {
	products, err := s.products.Search(ctx, filter, repository.ListQuery{OrderBy: "created_at asc"})
	if err != nil {
		return err
	}

	return export.Export(format, products, export.Options{EntityName: "products"}, sink)
}
