// Package service chứa logic nghiệp vụ của domain portfolio:
// quản lý sections, upload/xóa item và truy xuất asset.
package service

import (
	"context"
	"fmt"

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

// SectionService là service quản lý các section của portfolio
type SectionService struct {
	store  *storage.SectionStore // Kho dữ liệu sections.json
	videos *storage.AssetStore   // Store chứa file video
	images *storage.AssetStore   // Store chứa các gallery ảnh
}

// NewSectionService tạo mới SectionService
func NewSectionService() (*SectionService, error) {
	videos, exist := global.RegistryAssetStores.Get(global.StoreNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos asset store: %v", common.ErrNotFound)
	}
	images, exist := global.RegistryAssetStores.Get(global.StoreNames.Images)
	if !exist {
		return nil, fmt.Errorf("failed to get images asset store: %v", common.ErrNotFound)
	}

	return &SectionService{
		store:  global.SectionStore,
		videos: videos,
		images: images,
	}, nil
}

// GetAll trả về toàn bộ document sections cho trang public
func (s *SectionService) GetAll(ctx context.Context) ([]portfoliomodels.Section, error) {
	return s.store.Load(ctx)
}

// GetSummaries trả về danh sách rút gọn (id, name) cho màn quản trị
func (s *SectionService) GetSummaries(ctx context.Context) ([]portfoliodto.SectionSummary, error) {
	sections, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]portfoliodto.SectionSummary, 0, len(sections))
	for _, section := range sections {
		summaries = append(summaries, portfoliodto.SectionSummary{
			ID:   section.ID,
			Name: section.Name,
		})
	}
	return summaries, nil
}

// Create tạo section mới với trạng thái mặc định là closed.
// Tên section được chuẩn hóa để luôn có tiền tố "#".
func (s *SectionService) Create(ctx context.Context, input *portfoliodto.SectionCreateInput) (*portfoliomodels.Section, error) {
	newSection := portfoliomodels.Section{
		ID:     uuid.NewString(),
		Name:   utility.NormalizeSectionName(input.Name),
		Status: portfoliomodels.SectionStatusClosed,
		Items:  []portfoliomodels.Item{},
	}

	err := s.store.Update(ctx, func(sections *[]portfoliomodels.Section) error {
		*sections = append(*sections, newSection)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("portfolio").WithFields(logrus.Fields{
		"sectionId":   newSection.ID,
		"sectionName": newSection.Name,
	}).Info("Đã tạo section mới")

	return &newSection, nil
}

// Delete xóa section cùng toàn bộ item bên trong.
// Document được cập nhật trước (điểm commit), sau đó mới dọn asset trên đĩa:
// nếu dọn asset thất bại thì chỉ còn file mồ côi, không bao giờ có item
// trỏ tới asset đã mất.
func (s *SectionService) Delete(ctx context.Context, sectionID string) error {
	var removed *portfoliomodels.Section

	err := s.store.Update(ctx, func(sections *[]portfoliomodels.Section) error {
		for i := range *sections {
			if (*sections)[i].ID == sectionID {
				section := (*sections)[i]
				removed = &section
				*sections = append((*sections)[:i], (*sections)[i+1:]...)
				return nil
			}
		}
		return common.NewError(common.ErrCodeStorageRead,
			"Không tìm thấy section cần xóa", common.StatusNotFound, nil)
	})
	if err != nil {
		return err
	}

	// Dọn asset của từng item, lỗi chỉ log vì document đã là source of truth
	for _, item := range removed.Items {
		if item.VideoID == "" {
			continue
		}
		cleanupItemAssets(s.videos, s.images, item.VideoID)
	}

	logger.WithModule("portfolio").WithFields(logrus.Fields{
		"sectionId": sectionID,
		"itemCount": len(removed.Items),
	}).Info("Đã xóa section")

	return nil
}
