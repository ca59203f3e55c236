// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lweber/gameshop-backend/internal/services"
	"github.com/lweber/gameshop-backend/internal/utils"
)

type AuthHandler struct {
	accessCodeService *services.AccessCodeService
}

func NewAuthHandler(accessCodeService *services.AccessCodeService) *AuthHandler {
	return &AuthHandler{accessCodeService: accessCodeService}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	token, code, err := h.accessCodeService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token":       token,
		"access_code": code,
	})
}
