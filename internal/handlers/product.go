// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lweber/gameshop-backend/internal/export"
	"github.com/lweber/gameshop-backend/internal/repository"
	"github.com/lweber/gameshop-backend/internal/services"
	"github.com/lweber/gameshop-backend/internal/utils"
)

var productSortFields = []string{"created_at", "updated_at", "title", "price", "rating"}

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func productFilterFromQuery(c *gin.Context) repository.ProductFilter {
	return repository.ProductFilter{
		Title:       c.Query("title"),
		Description: c.Query("description"),
		Genre:       c.Query("genre"),
		Category:    c.Query("category"),
		SupportTag:  c.Query("support_tag"),
	}
}

// productSearchFilter additionally fans a bare "search" term out across
// every fuzzy field. Only the paginated (OR-combined) endpoints use it;
// the export endpoints filter exactly, where the fan-out would AND the
// term onto every field at once.
func productSearchFilter(c *gin.Context) repository.ProductFilter {
	filter := productFilterFromQuery(c)
	if term := c.Query("search"); term != "" {
		filter.Title = term
		filter.Description = term
		filter.Genre = term
		filter.Category = term
	}
	return filter
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.productService.SearchProducts(c.Request.Context(), productSearchFilter(c), repository.PageQuery{
		Page:    params.Page,
		Take:    params.Take,
		OrderBy: params.OrderBy(productSortFields),
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": id})
}

// GET /products/export?format=csv
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	err = h.productService.ExportProducts(c.Request.Context(), format, productFilterFromQuery(c), responseSink{c})
	if err != nil {
		utils.AppErrorResponse(c, err)
	}
}
