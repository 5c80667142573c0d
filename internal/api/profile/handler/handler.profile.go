// Package handler chứa các Fiber handler của domain profile.
package handler

import (
	"fmt"
	"mime/multipart"
	"os"

	basehdl "portfolio_api/internal/api/base/handler"
	profilesvc "portfolio_api/internal/api/profile/service"
	"portfolio_api/internal/common"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// ProfileHandler xử lý các request liên quan đến ảnh profile
type ProfileHandler struct {
	*basehdl.BaseHandler
	ProfileService *profilesvc.ProfileService
}

// NewProfileHandler tạo mới ProfileHandler
func NewProfileHandler() (*ProfileHandler, error) {
	profileService, err := profilesvc.NewProfileService()
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %v", err)
	}
	return &ProfileHandler{
		BaseHandler:    &basehdl.BaseHandler{},
		ProfileService: profileService,
	}, nil
}

// HandleGetProfileImage trả về URL ảnh profile hiện tại (imageUrl null nếu chưa có)
// @Summary Lấy thông tin ảnh profile
// @Router /profile/image [get]
func (h *ProfileHandler) HandleGetProfileImage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		info, err := h.ProfileService.GetImageInfo()
		h.HandleResponse(c, info, err)
		return nil
	})
}

// HandleGetProfileImageFile trả về nội dung file ảnh profile gốc
// @Summary Lấy file ảnh profile
// @Router /profile/image/file [get]
func (h *ProfileHandler) HandleGetProfileImageFile(c fiber.Ctx) error {
	return h.serveProfileFile(c, h.ProfileService.GetImageFile)
}

// HandleGetProfileThumbnail trả về thumbnail của ảnh profile,
// fallback về ảnh gốc nếu thumbnail chưa được tạo
// @Summary Lấy thumbnail ảnh profile
// @Router /profile/image/thumb [get]
func (h *ProfileHandler) HandleGetProfileThumbnail(c fiber.Ctx) error {
	return h.serveProfileFile(c, h.ProfileService.GetThumbnailFile)
}

// HandleUploadProfileImage nhận multipart form chứa field "image" và thay ảnh profile
// @Summary Upload ảnh profile mới
// @Router /admin/profile/image [post]
func (h *ProfileHandler) HandleUploadProfileImage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		form, err := c.MultipartForm()
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Request không phải multipart form hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		var imageFile *multipart.FileHeader
		if files := form.File["image"]; len(files) > 0 {
			imageFile = files[0]
		}

		info, err := h.ProfileService.Upload(imageFile)
		if err == nil {
			logger.LogAdminAction(c, "profile_image_update", "profile", "profile", nil)
		}
		h.HandleResponseWithStatus(c, info, common.StatusCreated, err)
		return nil
	})
}

// serveProfileFile stream một file của store profile xuống client với
// Content-Type theo đuôi file và cache dài hạn
func (h *ProfileHandler) serveProfileFile(c fiber.Ctx, find func() (string, os.FileInfo, error)) error {
	return h.SafeHandler(c, func() error {
		name, info, err := find()
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		f, err := h.ProfileService.Open(name)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		c.Set("Content-Type", utility.ImageContentType(name))
		c.Set("Cache-Control", "public, max-age=31536000, immutable")
		return c.Status(common.StatusOK).SendStream(f, int(info.Size()))
	})
}
