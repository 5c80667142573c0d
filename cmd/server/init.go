package main

import (
	"path/filepath"

	"portfolio_api/config"
	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/storage"
)

// InitGlobal khởi tạo các thành phần toàn cục của ứng dụng theo thứ tự:
// validator → config → storage. Mọi lỗi ở đây là fatal vì server không
// thể chạy thiếu bất kỳ thành phần nào.
func InitGlobal() {
	initValidator()
	initConfig()
	initStorage()
}

// initValidator khởi tạo validator toàn cục cùng các rule tùy chỉnh
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

// initConfig đọc cấu hình từ file env và gán vào biến toàn cục
func initConfig() {
	log := logger.GetAppLogger()
	cfg := config.NewConfig()
	if cfg == nil {
		log.Fatal("Không thể đọc cấu hình từ file env")
	}
	global.ServerConfig = cfg
	log.Info("Initialized config")
}

// initStorage khởi tạo SectionStore và đăng ký các AssetStore vào registry
func initStorage() {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	global.SectionStore = storage.NewSectionStore(filepath.Join(cfg.DataDir, "sections.json"))

	storeNames := []string{
		global.StoreNames.Videos,
		global.StoreNames.Images,
		global.StoreNames.Profile,
	}
	for _, name := range storeNames {
		store := storage.NewAssetStore(filepath.Join(cfg.PublicDir, name))
		if registered := global.RegistryAssetStores.Register(name, store); registered {
			log.Infof("Asset store %s registered successfully", name)
		} else {
			log.Errorf("Asset store %s already registered", name)
		}
	}

	log.Info("Initialized storage")
}
