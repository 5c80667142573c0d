package main

import (
	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"
)

// InitDefaultData đảm bảo kho dữ liệu trên đĩa tồn tại trước khi nhận request:
// file sections.json (tạo rỗng "[]" nếu chưa có) và các thư mục asset public.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	// 1. Khởi tạo file sections.json (PHẢI LÀM TRƯỚC - source of truth)
	log.Info("🔄 [INIT] Step 1: Initializing sections store...")
	if err := global.SectionStore.EnsureFile(); err != nil {
		log.Fatalf("Failed to initialize sections store: %v", err)
	}
	log.Infof("✅ [INIT] Step 1: Sections store initialized at %s", global.SectionStore.FilePath())

	// 2. Khởi tạo các thư mục asset (videos, images, profile)
	log.Info("🔄 [INIT] Step 2: Initializing asset stores...")
	for _, name := range global.RegistryAssetStores.Names() {
		store, ok := global.RegistryAssetStores.Get(name)
		if !ok {
			log.Fatalf("Asset store %s not registered", name)
		}
		if err := store.EnsureRoot(); err != nil {
			log.Fatalf("Failed to initialize asset store %s: %v", name, err)
		}
	}
	log.Info("✅ [INIT] Step 2: Asset stores initialized")
}
