// internal/handlers/access_code.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lweber/gameshop-backend/internal/export"
	"github.com/lweber/gameshop-backend/internal/repository"
	"github.com/lweber/gameshop-backend/internal/services"
	"github.com/lweber/gameshop-backend/internal/utils"
)

var accessCodeSortFields = []string{"created_at", "updated_at", "code", "discount"}

type AccessCodeHandler struct {
	accessCodeService *services.AccessCodeService
}

func NewAccessCodeHandler(accessCodeService *services.AccessCodeService) *AccessCodeHandler {
	return &AccessCodeHandler{accessCodeService: accessCodeService}
}

func accessCodeFilterFromQuery(c *gin.Context) repository.AccessCodeFilter {
	return repository.AccessCodeFilter{
		Code:       c.Query("code"),
		AssignedTo: c.Query("assigned_to"),
	}
}

// accessCodeSearchFilter fans a bare "search" term out for the fuzzy
// listing; exports filter exactly and skip the fan-out.
func accessCodeSearchFilter(c *gin.Context) repository.AccessCodeFilter {
	filter := accessCodeFilterFromQuery(c)
	if term := c.Query("search"); term != "" {
		filter.Code = term
		filter.AssignedTo = term
	}
	return filter
}

// GET /access-codes
func (h *AccessCodeHandler) GetAccessCodes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.accessCodeService.SearchAccessCodes(c.Request.Context(), accessCodeSearchFilter(c), repository.PageQuery{
		Page:    params.Page,
		Take:    params.Take,
		OrderBy: params.OrderBy(accessCodeSortFields),
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /access-codes/:id
func (h *AccessCodeHandler) GetAccessCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid access code ID", nil)
		return
	}

	code, err := h.accessCodeService.GetAccessCode(c.Request.Context(), id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, code)
}

// POST /access-codes
func (h *AccessCodeHandler) CreateAccessCode(c *gin.Context) {
	var req services.CreateAccessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	code, err := h.accessCodeService.CreateAccessCode(c.Request.Context(), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, code)
}

// PUT /access-codes/:id
func (h *AccessCodeHandler) UpdateAccessCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid access code ID", nil)
		return
	}

	var req services.UpdateAccessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	code, err := h.accessCodeService.UpdateAccessCode(c.Request.Context(), id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, code)
}

// DELETE /access-codes/:id
func (h *AccessCodeHandler) DeleteAccessCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid access code ID", nil)
		return
	}

	if err := h.accessCodeService.DeleteAccessCode(c.Request.Context(), id); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": id})
}

// GET /access-codes/export?format=csv
func (h *AccessCodeHandler) ExportAccessCodes(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	err = h.accessCodeService.ExportAccessCodes(c.Request.Context(), format, accessCodeFilterFromQuery(c), responseSink{c})
	if err != nil {
		utils.AppErrorResponse(c, err)
	}
}
