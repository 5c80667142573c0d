// Package service chứa logic nghiệp vụ của domain profile:
// quản lý ảnh đại diện duy nhất của chủ trang.
package service

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	profiledto "portfolio_api/internal/api/profile/dto"
	"portfolio_api/internal/common"
	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/storage"
	"portfolio_api/internal/utility"

	"github.com/disintegration/imaging"
)

const (
	// profileStem tên cố định của file ảnh profile (profile.jpg, profile.png...)
	profileStem = "profile"
	// thumbStem tên cố định của file thumbnail
	thumbStem = "profile_thumb"
	// thumbWidth chiều rộng thumbnail, chiều cao tính theo tỉ lệ gốc
	thumbWidth = 256
)

// ProfileService quản lý ảnh profile trong thư mục public/profile.
// Bất biến: tối đa một ảnh profile tồn tại tại mọi thời điểm.
type ProfileService struct {
	store *storage.AssetStore // Store chứa ảnh profile
}

// NewProfileService tạo mới ProfileService
func NewProfileService() (*ProfileService, error) {
	store, exist := global.RegistryAssetStores.Get(global.StoreNames.Profile)
	if !exist {
		return nil, fmt.Errorf("failed to get profile asset store: %v", common.ErrNotFound)
	}
	return &ProfileService{store: store}, nil
}

// GetImageInfo trả về URL ảnh profile hiện tại, nil nếu chưa có ảnh
func (s *ProfileService) GetImageInfo() (*profiledto.ProfileImageInfo, error) {
	info := &profiledto.ProfileImageInfo{}

	name, err := s.store.FindByStem(profileStem)
	if err != nil {
		// Chưa có ảnh không phải lỗi, trả về imageUrl null
		return info, nil
	}
	url := "/profile/" + name
	info.ImageURL = &url

	if thumbName, err := s.store.FindByStem(thumbStem); err == nil {
		thumbURL := "/profile/" + thumbName
		info.ThumbnailURL = &thumbURL
	}
	return info, nil
}

// GetImageFile trả về tên file và thông tin của ảnh profile gốc
func (s *ProfileService) GetImageFile() (string, os.FileInfo, error) {
	return s.findFile(profileStem)
}

// GetThumbnailFile trả về file thumbnail, fallback về ảnh gốc nếu
// thumbnail chưa được tạo (ví dụ ảnh svg/gif)
func (s *ProfileService) GetThumbnailFile() (string, os.FileInfo, error) {
	if name, info, err := s.findFile(thumbStem); err == nil {
		return name, info, nil
	}
	return s.findFile(profileStem)
}

// Open mở một file trong store profile để đọc
func (s *ProfileService) Open(name string) (*os.File, error) {
	return s.store.Open(name)
}

// findFile tìm file theo stem và kèm thông tin stat
func (s *ProfileService) findFile(stem string) (string, os.FileInfo, error) {
	name, err := s.store.FindByStem(stem)
	if err != nil {
		return "", nil, common.NewError(common.ErrCodeStorageRead,
			"Không tìm thấy ảnh profile", common.StatusNotFound, nil)
	}
	info, err := s.store.Stat(name)
	if err != nil {
		return "", nil, err
	}
	return name, info, nil
}

// Upload thay ảnh profile bằng file mới. Ảnh cũ (và thumbnail cũ) bị xóa
// trước khi ghi để giữ bất biến chỉ có một ảnh profile. Sau khi lưu,
// thumbnail 256px được tạo từ ảnh gốc; tạo thumbnail thất bại không làm
// hỏng upload.
func (s *ProfileService) Upload(imageFile *multipart.FileHeader) (*profiledto.ProfileImageInfo, error) {
	if imageFile == nil || imageFile.Size == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"Thiếu file ảnh trong request", common.StatusBadRequest, nil)
	}

	ext := strings.ToLower(filepath.Ext(imageFile.Filename))
	if !utility.IsImageExt(ext) {
		return nil, common.NewError(common.ErrCodeValidationFormat,
			"Định dạng ảnh không hợp lệ. Các định dạng cho phép: jpg, jpeg, png, gif, webp, svg",
			common.StatusBadRequest, nil)
	}

	if err := s.store.EnsureRoot(); err != nil {
		return nil, err
	}

	// Xóa ảnh cũ để giữ bất biến một ảnh duy nhất
	if files, err := s.store.ListFiles(""); err == nil {
		for _, file := range files {
			if !utility.IsImageFileName(file) {
				continue
			}
			if err := s.store.Remove(file); err != nil {
				logger.WithModule("profile").WithError(err).
					WithField("fileName", file).Warn("Không xóa được ảnh profile cũ")
			}
		}
	}

	// Lưu ảnh mới với tên cố định profile{ext}
	imageName := profileStem + ext
	src, err := imageFile.Open()
	if err != nil {
		return nil, common.NewError(common.ErrCodeUpload,
			"Không đọc được file ảnh từ request", common.StatusBadRequest, err)
	}
	err = s.store.SaveFile(imageName, src)
	src.Close()
	if err != nil {
		return nil, err
	}

	info := &profiledto.ProfileImageInfo{}
	url := "/profile/" + imageName
	info.ImageURL = &url

	// Tạo thumbnail (bỏ qua định dạng vector/động)
	if ext != ".svg" && ext != ".gif" {
		thumbName := thumbStem + ext
		if err := s.generateThumbnail(imageName, thumbName); err != nil {
			logger.WithModule("profile").WithError(err).Warn("Không tạo được thumbnail, giữ nguyên ảnh gốc")
		} else {
			thumbURL := "/profile/" + thumbName
			info.ThumbnailURL = &thumbURL
		}
	}

	logger.WithModule("profile").WithField("fileName", imageName).Info("Đã cập nhật ảnh profile")
	return info, nil
}

// generateThumbnail đọc ảnh gốc, resize về chiều rộng cố định và lưu lại
func (s *ProfileService) generateThumbnail(srcName, dstName string) error {
	img, err := imaging.Open(s.store.Path(srcName))
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	return imaging.Save(thumb, s.store.Path(dstName))
}
