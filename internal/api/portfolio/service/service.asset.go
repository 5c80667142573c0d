package service

import (
	"fmt"
	"os"
	"path"

	"portfolio_api/internal/common"
	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/storage"
	"portfolio_api/internal/utility"
)

// AssetService truy xuất các asset public: video streaming và gallery ảnh
type AssetService struct {
	videos *storage.AssetStore // Store chứa file video
	images *storage.AssetStore // Store chứa các gallery ảnh
}

// NewAssetService tạo mới AssetService
func NewAssetService() (*AssetService, error) {
	videos, exist := global.RegistryAssetStores.Get(global.StoreNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos asset store: %v", common.ErrNotFound)
	}
	images, exist := global.RegistryAssetStores.Get(global.StoreNames.Images)
	if !exist {
		return nil, fmt.Errorf("failed to get images asset store: %v", common.ErrNotFound)
	}

	return &AssetService{
		videos: videos,
		images: images,
	}, nil
}

// ResolveVideo tìm file video theo định danh client gửi lên.
// Chấp nhận cả tên file đầy đủ (uuid.mp4) lẫn videoId trần (uuid):
// thử match chính xác trước, sau đó tìm theo stem.
func (s *AssetService) ResolveVideo(videoID string) (string, os.FileInfo, error) {
	name := videoID
	info, err := s.videos.Stat(name)
	if err != nil {
		name, err = s.videos.FindByStem(videoID)
		if err != nil {
			return "", nil, common.NewError(common.ErrCodeStorageRead,
				"Không tìm thấy file video", common.StatusNotFound, nil)
		}
		info, err = s.videos.Stat(name)
		if err != nil {
			return "", nil, err
		}
	}
	return name, info, nil
}

// OpenVideo mở file video để stream. Caller chịu trách nhiệm Close
// (hoặc giao cho response stream đóng).
func (s *AssetService) OpenVideo(fileName string) (*os.File, error) {
	return s.videos.Open(fileName)
}

// ListImages trả về danh sách URL ảnh trong gallery của một videoId,
// chỉ gồm các file có đuôi ảnh hợp lệ, sắp xếp theo tên.
// Gallery chưa tồn tại trả về danh sách rỗng.
func (s *AssetService) ListImages(videoID string) ([]string, error) {
	files, err := s.images.ListFiles(videoID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if !utility.IsImageFileName(file) {
			continue
		}
		urls = append(urls, path.Join("/images", videoID, file))
	}
	return urls, nil
}

// ImagePath trả về đường dẫn tuyệt đối của một file ảnh trong gallery,
// kèm lỗi NotFound nếu file không tồn tại
func (s *AssetService) ImagePath(videoID, fileName string) (string, os.FileInfo, error) {
	info, err := s.images.Stat(videoID, fileName)
	if err != nil {
		return "", nil, common.NewError(common.ErrCodeStorageRead,
			"Không tìm thấy file ảnh", common.StatusNotFound, nil)
	}
	return s.images.Path(videoID, fileName), info, nil
}

// OpenImage mở một file ảnh trong gallery để đọc
func (s *AssetService) OpenImage(videoID, fileName string) (*os.File, error) {
	return s.images.Open(videoID, fileName)
}

// cleanupItemAssets xóa file video và thư mục ảnh gallery của một videoId.
// Best-effort: asset không tồn tại hoặc xóa lỗi chỉ ghi log, vì document
// sections.json đã được cập nhật trước đó và là source of truth.
func cleanupItemAssets(videos, images *storage.AssetStore, videoID string) {
	log := logger.WithModule("portfolio").WithField("videoId", videoID)

	// Tìm file video theo định danh (tên file là videoId + đuôi gốc)
	if fileName, err := videos.FindByStem(videoID); err == nil {
		if err := videos.Remove(fileName); err != nil {
			log.WithError(err).Warn("Không xóa được file video")
		}
	} else {
		log.Info("Không tìm thấy file video để xóa")
	}

	// Xóa thư mục ảnh gallery
	if err := images.RemoveDir(videoID); err != nil {
		log.WithError(err).Warn("Không xóa được thư mục ảnh")
	}
}
