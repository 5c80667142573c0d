package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	portfoliodto "portfolio_api/internal/api/portfolio/dto"
	portfoliomodels "portfolio_api/internal/api/portfolio/models"
	"portfolio_api/internal/common"
	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/storage"
	"portfolio_api/internal/utility"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxVideoIDAttempts số lần thử sinh UUID mới khi tên file video bị trùng
const maxVideoIDAttempts = 10

// ItemService quản lý vòng đời của item: upload (asset + document) và xóa
type ItemService struct {
	store  *storage.SectionStore // Kho dữ liệu sections.json
	videos *storage.AssetStore   // Store chứa file video
	images *storage.AssetStore   // Store chứa các gallery ảnh
}

// NewItemService tạo mới ItemService
func NewItemService() (*ItemService, error) {
	videos, exist := global.RegistryAssetStores.Get(global.StoreNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos asset store: %v", common.ErrNotFound)
	}
	images, exist := global.RegistryAssetStores.Get(global.StoreNames.Images)
	if !exist {
		return nil, fmt.Errorf("failed to get images asset store: %v", common.ErrNotFound)
	}

	return &ItemService{
		store:  global.SectionStore,
		videos: videos,
		images: images,
	}, nil
}

// Upload thực hiện toàn bộ workflow thêm item mới:
//  1. Lưu file video với định danh UUID (thử lại khi trùng tên)
//  2. Lưu các file ảnh vào gallery images/{videoId}
//  3. Cập nhật sections.json (điểm commit của workflow)
//
// Mọi bước đều kiểm tra ctx để phát hiện timeout hoặc client hủy kết nối.
// Thất bại ở bất kỳ bước nào thì các file đã ghi được gỡ lại theo thứ tự
// ngược (LIFO), đảm bảo không còn asset mồ côi do upload dở dang.
func (s *ItemService) Upload(ctx context.Context, input *portfoliodto.ItemUploadInput, videoFile *multipart.FileHeader, imageFiles []*multipart.FileHeader) (*portfoliomodels.Item, error) {
	log := logger.WithModule("portfolio")

	// Danh sách undo, chạy ngược thứ tự khi workflow thất bại
	var undo []func()
	rollback := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, convertUploadError(err)
	}

	// Bước 1: lưu file video (nếu có)
	var videoID, videoFileName string
	if videoFile != nil && videoFile.Size > 0 {
		videoFileName = videoFile.Filename
		ext := filepath.Ext(videoFileName)

		if err := s.videos.EnsureRoot(); err != nil {
			return nil, err
		}

		// Sinh UUID làm tên file, thử lại khi bị trùng
		attempts := 0
		for {
			if err := ctx.Err(); err != nil {
				return nil, convertUploadError(err)
			}
			videoID = uuid.NewString()
			if !s.videos.Exists(videoID + ext) {
				break
			}
			attempts++
			if attempts >= maxVideoIDAttempts {
				return nil, common.ErrAssetIDRetry
			}
		}

		src, err := videoFile.Open()
		if err != nil {
			return nil, common.NewError(common.ErrCodeUpload,
				"Không đọc được file video từ request", common.StatusBadRequest, err)
		}
		err = s.videos.SaveFile(videoID+ext, src)
		src.Close()
		if err != nil {
			return nil, convertUploadError(err)
		}
		savedVideo := videoID + ext
		undo = append(undo, func() {
			if err := s.videos.Remove(savedVideo); err != nil {
				log.WithError(err).Warn("Rollback: không xóa được file video")
			}
		})

		log.WithFields(logrus.Fields{
			"videoId":  videoID,
			"fileName": videoFileName,
		}).Info("Đã lưu file video")
	}

	// Bước 2: lưu các file ảnh vào gallery (chỉ khi có video)
	if len(imageFiles) > 0 && videoID != "" {
		galleryID := videoID
		undo = append(undo, func() {
			if err := s.images.RemoveDir(galleryID); err != nil {
				log.WithError(err).Warn("Rollback: không xóa được thư mục ảnh")
			}
		})

		for _, imageFile := range imageFiles {
			if err := ctx.Err(); err != nil {
				rollback()
				return nil, convertUploadError(err)
			}
			if imageFile.Size <= 0 {
				continue
			}

			// Chặn tên file chứa ký tự đường dẫn
			name, ok := utility.SanitizeFileName(imageFile.Filename)
			if !ok {
				log.WithField("fileName", imageFile.Filename).
					Warn("Bỏ qua file ảnh có tên không an toàn")
				continue
			}

			src, err := imageFile.Open()
			if err != nil {
				// Lỗi một file ảnh riêng lẻ không làm hỏng cả workflow
				log.WithError(err).WithField("fileName", name).
					Warn("Không đọc được file ảnh, bỏ qua")
				continue
			}
			err = s.images.SaveFileIn(galleryID, name, src)
			src.Close()
			if err != nil {
				log.WithError(err).WithField("fileName", name).
					Warn("Không lưu được file ảnh, bỏ qua")
				continue
			}
		}
	}

	// Bước 3: cập nhật sections.json - điểm commit của workflow
	newItem := portfoliomodels.Item{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Hashtags:      utility.ParseHashtags(input.Hashtags),
		JoinRole:      input.JoinRole,
		Description:   input.Description,
		VideoID:       videoID,
		VideoFileName: videoFileName,
		CreatedAt:     input.CreatedAt,
	}
	if newItem.CreatedAt == "" {
		newItem.CreatedAt = time.Now().Format(time.RFC3339)
	}

	err := s.store.Update(ctx, func(sections *[]portfoliomodels.Section) error {
		section := portfoliomodels.FindSectionByID(*sections, input.SectionID)
		if section == nil {
			return common.NewError(common.ErrCodeStorageRead,
				fmt.Sprintf("Không tìm thấy section %q", input.SectionID),
				common.StatusNotFound, nil)
		}
		section.Items = append(section.Items, newItem)
		return nil
	})
	if err != nil {
		rollback()
		return nil, convertUploadError(err)
	}

	log.WithFields(logrus.Fields{
		"itemId":    newItem.ID,
		"sectionId": input.SectionID,
		"videoId":   videoID,
	}).Info("Đã thêm item mới vào portfolio")

	return &newItem, nil
}

// Delete xóa item khỏi document rồi dọn asset của nó.
// Cập nhật document là điểm commit: asset dọn sau, lỗi chỉ log.
func (s *ItemService) Delete(ctx context.Context, itemID string) error {
	var videoID string

	err := s.store.Update(ctx, func(sections *[]portfoliomodels.Section) error {
		section, idx := portfoliomodels.FindItemByID(*sections, itemID)
		if section == nil {
			return common.NewError(common.ErrCodeStorageRead,
				"Không tìm thấy item cần xóa", common.StatusNotFound, nil)
		}
		videoID = section.Items[idx].VideoID
		section.Items = append(section.Items[:idx], section.Items[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	if videoID != "" {
		cleanupItemAssets(s.videos, s.images, videoID)
	}

	logger.WithModule("portfolio").WithFields(logrus.Fields{
		"itemId":  itemID,
		"videoId": videoID,
	}).Info("Đã xóa item khỏi portfolio")

	return nil
}

// convertUploadError map lỗi context sang lỗi upload của taxonomy:
// quá hạn → 408, client hủy kết nối → 499
func convertUploadError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return common.ErrUploadTimeout
	}
	if errors.Is(err, context.Canceled) {
		return common.ErrClientAborted
	}
	return common.ConvertStorageError(err)
}
