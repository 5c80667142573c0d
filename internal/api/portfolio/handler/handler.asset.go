package handler

import (
	"fmt"
	"io"
	"os"

	basehdl "portfolio_api/internal/api/base/handler"
	portfoliodto "portfolio_api/internal/api/portfolio/dto"
	portfoliosvc "portfolio_api/internal/api/portfolio/service"
	"portfolio_api/internal/common"
	"portfolio_api/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// AssetHandler phục vụ các asset public: video streaming và gallery ảnh
type AssetHandler struct {
	*basehdl.BaseHandler
	AssetService *portfoliosvc.AssetService
}

// NewAssetHandler tạo mới AssetHandler
func NewAssetHandler() (*AssetHandler, error) {
	assetService, err := portfoliosvc.NewAssetService()
	if err != nil {
		return nil, fmt.Errorf("failed to create asset service: %v", err)
	}
	return &AssetHandler{
		BaseHandler:  &basehdl.BaseHandler{},
		AssetService: assetService,
	}, nil
}

// fileStream bọc một đoạn của file để stream xuống client,
// đảm bảo file được đóng sau khi response gửi xong
type fileStream struct {
	io.Reader
	file *os.File
}

// Close đóng file nguồn sau khi stream xong
func (s *fileStream) Close() error {
	return s.file.Close()
}

// HandleStreamVideo phục vụ file video, hỗ trợ Range request để trình duyệt
// seek được trong video. Không có Range header thì trả về toàn bộ file.
// @Summary Stream video
// @Router /video/{videoId} [get]
func (h *AssetHandler) HandleStreamVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		params := new(portfoliodto.VideoIDParams)
		if err := h.ParseRequestParams(c, params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		fileName, info, err := h.AssetService.ResolveVideo(params.VideoID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		rangeHeader := c.Get("Range")
		if rangeHeader == "" {
			// Trả về toàn bộ file
			f, err := h.AssetService.OpenVideo(fileName)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			c.Set("Content-Type", "video/mp4")
			c.Set("Accept-Ranges", "bytes")
			return c.Status(common.StatusOK).SendStream(&fileStream{Reader: f, file: f}, int(info.Size()))
		}

		// Xử lý Range request
		byteRange, err := utility.ParseRange(rangeHeader, info.Size())
		if err != nil {
			c.Set("Content-Range", fmt.Sprintf("bytes */%d", info.Size()))
			h.HandleResponse(c, nil, err)
			return nil
		}

		f, err := h.AssetService.OpenVideo(fileName)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if _, err := f.Seek(byteRange.Start, io.SeekStart); err != nil {
			f.Close()
			h.HandleResponse(c, nil, common.ConvertStorageError(err))
			return nil
		}

		c.Set("Content-Type", "video/mp4")
		c.Set("Accept-Ranges", "bytes")
		c.Set("Content-Range", byteRange.ContentRange())
		stream := &fileStream{Reader: io.LimitReader(f, byteRange.Length()), file: f}
		return c.Status(common.StatusPartialContent).SendStream(stream, int(byteRange.Length()))
	})
}

// HandleListImages trả về danh sách URL ảnh trong gallery của một videoId.
// Gallery chưa tồn tại trả về danh sách rỗng (trạng thái bình thường).
// @Summary Liệt kê ảnh gallery
// @Router /portfolio/images/{videoId} [get]
func (h *AssetHandler) HandleListImages(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		params := new(portfoliodto.VideoIDParams)
		if err := h.ParseRequestParams(c, params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		urls, err := h.AssetService.ListImages(params.VideoID)
		h.HandleResponse(c, urls, err)
		return nil
	})
}

// HandleGetImage trả về nội dung một file ảnh trong gallery.
// Ảnh có tên bất biến theo videoId nên cache dài hạn được.
// @Summary Lấy file ảnh
// @Router /portfolio/images/{videoId}/{fileName} [get]
func (h *AssetHandler) HandleGetImage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		params := new(portfoliodto.ImageFileParams)
		if err := h.ParseRequestParams(c, params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		_, info, err := h.AssetService.ImagePath(params.VideoID, params.FileName)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		f, err := h.AssetService.OpenImage(params.VideoID, params.FileName)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		c.Set("Content-Type", utility.ImageContentType(params.FileName))
		c.Set("Cache-Control", "public, max-age=31536000, immutable")
		return c.Status(common.StatusOK).SendStream(&fileStream{Reader: f, file: f}, int(info.Size()))
	})
}
