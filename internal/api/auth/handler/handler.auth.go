// Package handler chứa các Fiber handler của domain auth.
package handler

import (
	"fmt"

	authdto "portfolio_api/internal/api/auth/dto"
	authsvc "portfolio_api/internal/api/auth/service"
	basehdl "portfolio_api/internal/api/base/handler"
	"portfolio_api/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// AuthHandler xử lý các request đăng nhập quản trị
type AuthHandler struct {
	*basehdl.BaseHandler
	AuthService *authsvc.AuthService
}

// NewAuthHandler tạo mới AuthHandler
func NewAuthHandler() (*AuthHandler, error) {
	authService, err := authsvc.NewAuthService()
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %v", err)
	}
	return &AuthHandler{
		BaseHandler: &basehdl.BaseHandler{},
		AuthService: authService,
	}, nil
}

// HandleLogin xác thực mật khẩu quản trị và trả về JWT
// @Summary Đăng nhập quản trị
// @Router /auth/login [post]
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.LoginInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.AuthService.Login(input)
		logger.LogAuth(c, "login", err == nil)
		h.HandleResponse(c, result, err)
		return nil
	})
}
