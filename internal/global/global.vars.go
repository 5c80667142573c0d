package global

import (
	"portfolio_api/config"
	"portfolio_api/internal/registry"
	"portfolio_api/internal/storage"

	"github.com/go-playground/validator/v10"
)

// AssetStoreName chứa tên các asset store trên đĩa.
// Mỗi store ứng với một thư mục con trong thư mục public.
type AssetStoreName struct {
	Videos  string // Store cho file video (videos/{videoId}.{ext})
	Images  string // Store cho ảnh gallery (images/{videoId}/{fileName})
	Profile string // Store cho ảnh profile (profile/profile.{ext})
}

// Các biến toàn cục
var Validate *validator.Validate            // Biến để xác thực dữ liệu
var ServerConfig *config.Configuration      // Cấu hình của server
var SectionStore *storage.SectionStore      // Kho dữ liệu sections.json (source of truth)
var StoreNames = AssetStoreName{            // Tên các asset store
	Videos:  "videos",
	Images:  "images",
	Profile: "profile",
}

// RegistryAssetStores chứa các asset store theo tên (videos, images, profile)
var RegistryAssetStores = registry.NewRegistry[*storage.AssetStore]()
