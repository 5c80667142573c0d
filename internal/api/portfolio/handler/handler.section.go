// Package handler chứa các Fiber handler của domain portfolio.
package handler

import (
	"fmt"

	basehdl "portfolio_api/internal/api/base/handler"
	portfoliodto "portfolio_api/internal/api/portfolio/dto"
	portfoliosvc "portfolio_api/internal/api/portfolio/service"
	"portfolio_api/internal/common"
	"portfolio_api/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// SectionHandler xử lý các request liên quan đến section
type SectionHandler struct {
	*basehdl.BaseHandler
	SectionService *portfoliosvc.SectionService
}

// NewSectionHandler tạo mới SectionHandler
func NewSectionHandler() (*SectionHandler, error) {
	sectionService, err := portfoliosvc.NewSectionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create section service: %v", err)
	}
	return &SectionHandler{
		BaseHandler:    &basehdl.BaseHandler{},
		SectionService: sectionService,
	}, nil
}

// HandleGetSections trả về toàn bộ document sections cho trang public
// @Summary Lấy toàn bộ sections
// @Router /portfolio/sections [get]
func (h *SectionHandler) HandleGetSections(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		sections, err := h.SectionService.GetAll(c.Context())
		h.HandleResponse(c, sections, err)
		return nil
	})
}

// HandleGetSectionSummaries trả về danh sách rút gọn (id, name) cho màn quản trị
// @Summary Lấy danh sách section rút gọn
// @Router /admin/sections [get]
func (h *SectionHandler) HandleGetSectionSummaries(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		summaries, err := h.SectionService.GetSummaries(c.Context())
		h.HandleResponse(c, summaries, err)
		return nil
	})
}

// HandleCreateSection tạo section mới với trạng thái mặc định closed
// @Summary Tạo section mới
// @Router /admin/sections [post]
func (h *SectionHandler) HandleCreateSection(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(portfoliodto.SectionCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		section, err := h.SectionService.Create(c.Context(), input)
		if err == nil {
			logger.LogAdminAction(c, "section_create", "section", section.ID, nil)
		}
		h.HandleResponseWithStatus(c, section, common.StatusCreated, err)
		return nil
	})
}

// HandleDeleteSection xóa section cùng toàn bộ item và asset bên trong
// @Summary Xóa section
// @Router /admin/sections/{sectionId} [delete]
func (h *SectionHandler) HandleDeleteSection(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		params := new(portfoliodto.SectionIDParams)
		if err := h.ParseRequestParams(c, params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err := h.SectionService.Delete(c.Context(), params.SectionID)
		if err == nil {
			logger.LogAdminAction(c, "section_delete", "section", params.SectionID, nil)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}
