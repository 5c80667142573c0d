package handler

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	basehdl "portfolio_api/internal/api/base/handler"
	portfoliodto "portfolio_api/internal/api/portfolio/dto"
	portfoliosvc "portfolio_api/internal/api/portfolio/service"
	"portfolio_api/internal/common"
	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// ItemHandler xử lý các request upload và xóa item
type ItemHandler struct {
	*basehdl.BaseHandler
	ItemService *portfoliosvc.ItemService
}

// NewItemHandler tạo mới ItemHandler
func NewItemHandler() (*ItemHandler, error) {
	itemService, err := portfoliosvc.NewItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create item service: %v", err)
	}
	return &ItemHandler{
		BaseHandler: &basehdl.BaseHandler{},
		ItemService: itemService,
	}, nil
}

// HandleUploadItem nhận multipart form chứa metadata + file video + các file ảnh
// và thực hiện workflow upload. Toàn bộ workflow chạy dưới một context có
// deadline: quá hạn trả 408, client hủy kết nối trả 499.
// @Summary Upload item mới
// @Router /admin/portfolio [post]
func (h *ItemHandler) HandleUploadItem(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		// Giới hạn thời gian cho toàn bộ workflow upload
		timeout := time.Duration(global.ServerConfig.UploadTimeout) * time.Second
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()

		// Parse các field text của form
		input := new(portfoliodto.ItemUploadInput)
		input.SectionID = c.FormValue("sectionId")
		input.Title = c.FormValue("title")
		input.Hashtags = c.FormValue("hashtags")
		input.CreatedAt = c.FormValue("createdAt")
		input.JoinRole = c.FormValue("joinRole")
		input.Description = c.FormValue("description")
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Lấy file video và ảnh từ multipart form
		form, err := c.MultipartForm()
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Request không phải multipart form hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		var videoFile *multipart.FileHeader
		if files := form.File["video"]; len(files) > 0 {
			videoFile = files[0]
		}
		imageFiles := form.File["images"]

		item, err := h.ItemService.Upload(ctx, input, videoFile, imageFiles)
		if err == nil {
			logger.LogAdminAction(c, "item_upload", "item", item.ID, map[string]interface{}{
				"sectionId": input.SectionID,
				"videoId":   item.VideoID,
			})
		}
		h.HandleResponseWithStatus(c, item, common.StatusCreated, err)
		return nil
	})
}

// HandleDeleteItem xóa item khỏi document và dọn asset của nó
// @Summary Xóa item
// @Router /admin/portfolio/{itemId} [delete]
func (h *ItemHandler) HandleDeleteItem(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		params := new(portfoliodto.ItemIDParams)
		if err := h.ParseRequestParams(c, params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err := h.ItemService.Delete(c.Context(), params.ItemID)
		if err == nil {
			logger.LogAdminAction(c, "item_delete", "item", params.ItemID, nil)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}
