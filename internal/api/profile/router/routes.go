// Package router đăng ký các route thuộc domain Profile.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"portfolio_api/internal/api/middleware"
	profilehdl "portfolio_api/internal/api/profile/handler"
	apirouter "portfolio_api/internal/api/router"
)

// Register đăng ký các route profile lên v1.
// Đọc ảnh là public, thay ảnh nằm dưới /admin và yêu cầu JWT.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	profileHandler, err := profilehdl.NewProfileHandler()
	if err != nil {
		return fmt.Errorf("create profile handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/profile", "GET", "/image", nil, profileHandler.HandleGetProfileImage)
	apirouter.RegisterRouteWithMiddleware(v1, "/profile", "GET", "/image/file", nil, profileHandler.HandleGetProfileImageFile)
	apirouter.RegisterRouteWithMiddleware(v1, "/profile", "GET", "/image/thumb", nil, profileHandler.HandleGetProfileThumbnail)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/profile", "POST", "/image", []fiber.Handler{authMiddleware}, profileHandler.HandleUploadProfileImage)

	return nil
}
