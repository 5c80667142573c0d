// Package worker chứa các background worker chạy định kỳ của hệ thống.
package worker

import (
	"context"
	"strings"
	"time"

	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/storage"
)

// OrphanCleanupWorker worker dọn các asset mồ côi trong public:
// file video và thư mục ảnh có videoId không còn được item nào trong
// sections.json tham chiếu (ví dụ sau một lần upload/xóa dở dang bị
// mất điện giữa chừng). Chạy định kỳ theo interval.
type OrphanCleanupWorker struct {
	store    *storage.SectionStore // Kho dữ liệu sections.json
	videos   *storage.AssetStore   // Store chứa file video
	images   *storage.AssetStore   // Store chứa các gallery ảnh
	interval time.Duration         // Khoảng thời gian giữa các lần quét
	minAge   time.Duration         // Tuổi tối thiểu trước khi file bị coi là mồ côi
}

// NewOrphanCleanupWorker tạo mới OrphanCleanupWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (tối thiểu: 1 phút)
//   - minAge: Tuổi tối thiểu của asset trước khi bị dọn (tối thiểu: 10 phút,
//     để không dọn nhầm asset của một upload đang chạy)
func NewOrphanCleanupWorker(interval, minAge time.Duration) (*OrphanCleanupWorker, error) {
	videos, exist := global.RegistryAssetStores.Get(global.StoreNames.Videos)
	if !exist {
		return nil, storage.ErrStoreNotRegistered
	}
	images, exist := global.RegistryAssetStores.Get(global.StoreNames.Images)
	if !exist {
		return nil, storage.ErrStoreNotRegistered
	}

	// Set defaults
	if interval < time.Minute {
		interval = time.Hour
	}
	if minAge < 10*time.Minute {
		minAge = 24 * time.Hour
	}

	return &OrphanCleanupWorker{
		store:    global.SectionStore,
		videos:   videos,
		images:   images,
		interval: interval,
		minAge:   minAge,
	}, nil
}

// Start bắt đầu background worker dọn asset mồ côi.
// Worker chạy định kỳ theo interval cho đến khi ctx bị hủy.
func (w *OrphanCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
		"minAge":   w.minAge.String(),
	}).Info("🔄 [ORPHAN_CLEANUP] Starting Orphan Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [ORPHAN_CLEANUP] Orphan Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔄 [ORPHAN_CLEANUP] Panic khi quét asset mồ côi, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				removedCount, err := w.Sweep(ctx)
				if err != nil {
					log.WithError(err).Error("🔄 [ORPHAN_CLEANUP] Failed to sweep orphan assets")
					return
				}

				if removedCount > 0 {
					log.WithFields(map[string]interface{}{
						"removedCount": removedCount,
					}).Info("🔄 [ORPHAN_CLEANUP] Removed orphan assets")
				}
				// Nếu removedCount = 0, không log (giảm log noise)
			}()
		}
	}
}

// Sweep thực hiện một lần quét: đọc tập videoId đang được tham chiếu
// từ sections.json rồi xóa các asset không có trong tập và đã đủ tuổi.
// Trả về số asset đã xóa.
func (w *OrphanCleanupWorker) Sweep(ctx context.Context) (int, error) {
	sections, err := w.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	// Tập videoId đang được tham chiếu
	referenced := make(map[string]bool)
	for _, section := range sections {
		for _, item := range section.Items {
			if item.VideoID != "" {
				referenced[item.VideoID] = true
			}
		}
	}

	cutoff := time.Now().Add(-w.minAge)
	removed := 0
	log := logger.GetAppLogger()

	// Quét file video: tên file là videoId + đuôi gốc
	videoFiles, err := w.videos.ListFiles("")
	if err != nil {
		return removed, err
	}
	for _, file := range videoFiles {
		stem, _, _ := strings.Cut(file, ".")
		if referenced[stem] {
			continue
		}
		info, err := w.videos.Stat(file)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := w.videos.Remove(file); err != nil {
			log.WithError(err).WithField("fileName", file).Warn("🔄 [ORPHAN_CLEANUP] Không xóa được file video mồ côi")
			continue
		}
		logger.WithAsset(stem).Info("🔄 [ORPHAN_CLEANUP] Đã xóa file video mồ côi")
		removed++
	}

	// Quét thư mục ảnh: tên thư mục là videoId
	imageDirs, err := w.images.ListSubdirs()
	if err != nil {
		return removed, err
	}
	for _, dir := range imageDirs {
		if referenced[dir] {
			continue
		}
		info, err := w.images.Stat(dir)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := w.images.RemoveDir(dir); err != nil {
			log.WithError(err).WithField("dir", dir).Warn("🔄 [ORPHAN_CLEANUP] Không xóa được thư mục ảnh mồ côi")
			continue
		}
		logger.WithAsset(dir).Info("🔄 [ORPHAN_CLEANUP] Đã xóa thư mục ảnh mồ côi")
		removed++
	}

	return removed, nil
}
