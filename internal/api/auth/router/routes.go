// Package router đăng ký các route thuộc domain Auth.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "portfolio_api/internal/api/auth/handler"
	apirouter "portfolio_api/internal/api/router"
)

// Register đăng ký các route auth lên v1. Login là route public duy nhất
// của domain này.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	authHandler, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("create auth handler: %w", err)
	}

	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/login", nil, authHandler.HandleLogin)

	return nil
}
