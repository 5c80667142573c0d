// Package router đăng ký các route thuộc domain Portfolio: sections, items, videos, images.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"portfolio_api/internal/api/middleware"
	portfoliohdl "portfolio_api/internal/api/portfolio/handler"
	apirouter "portfolio_api/internal/api/router"
)

// Register đăng ký tất cả route portfolio lên v1.
// Route đọc nằm dưới /portfolio (public), route ghi nằm dưới /admin
// và yêu cầu JWT quản trị. Hai prefix tách biệt vì middleware của Fiber
// áp dụng theo prefix của group.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	sectionHandler, err := portfoliohdl.NewSectionHandler()
	if err != nil {
		return fmt.Errorf("create section handler: %w", err)
	}
	itemHandler, err := portfoliohdl.NewItemHandler()
	if err != nil {
		return fmt.Errorf("create item handler: %w", err)
	}
	assetHandler, err := portfoliohdl.NewAssetHandler()
	if err != nil {
		return fmt.Errorf("create asset handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()

	// Public: trang portfolio đọc document và asset
	apirouter.RegisterRouteWithMiddleware(v1, "/portfolio", "GET", "/sections", nil, sectionHandler.HandleGetSections)
	apirouter.RegisterRouteWithMiddleware(v1, "/portfolio", "GET", "/images/:videoId", nil, assetHandler.HandleListImages)
	apirouter.RegisterRouteWithMiddleware(v1, "/portfolio", "GET", "/images/:videoId/:fileName", nil, assetHandler.HandleGetImage)
	apirouter.RegisterRouteWithMiddleware(v1, "/video", "GET", "/:videoId", nil, assetHandler.HandleStreamVideo)

	// Admin: quản lý sections và items, yêu cầu JWT
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/sections", "GET", "/", []fiber.Handler{authMiddleware}, sectionHandler.HandleGetSectionSummaries)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/sections", "POST", "/", []fiber.Handler{authMiddleware}, sectionHandler.HandleCreateSection)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/sections", "DELETE", "/:sectionId", []fiber.Handler{authMiddleware}, sectionHandler.HandleDeleteSection)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/portfolio", "POST", "/", []fiber.Handler{authMiddleware}, itemHandler.HandleUploadItem)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/portfolio", "DELETE", "/:itemId", []fiber.Handler{authMiddleware}, itemHandler.HandleDeleteItem)

	return nil
}
