// Package storage quản lý kho dữ liệu trên đĩa của hệ thống:
// file sections.json (source of truth cho nội dung portfolio) và
// các thư mục asset trong public (videos, images, profile).
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"portfolio_api/internal/common"

	portfoliomodels "portfolio_api/internal/api/portfolio/models"
)

// SectionStore quản lý file sections.json theo mô hình đọc toàn bộ -
// sửa trong bộ nhớ - ghi lại toàn bộ. Mutex đảm bảo hai chu kỳ
// read-modify-write không đan xen nhau làm mất update (last-writer-wins).
type SectionStore struct {
	filePath string     // Đường dẫn đến sections.json
	mu       sync.Mutex // Serialize các chu kỳ read-modify-write
}

// NewSectionStore tạo mới SectionStore với đường dẫn file sections.json
func NewSectionStore(filePath string) *SectionStore {
	return &SectionStore{
		filePath: filePath,
	}
}

// FilePath trả về đường dẫn file sections.json
func (s *SectionStore) FilePath() string {
	return s.filePath
}

// EnsureFile tạo file sections.json với mảng rỗng nếu chưa tồn tại
func (s *SectionStore) EnsureFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.filePath); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("tạo thư mục data: %w", err)
	}
	return s.writeLocked([]portfoliomodels.Section{})
}

// Load đọc toàn bộ document sections từ đĩa
func (s *SectionStore) Load(ctx context.Context) ([]portfoliomodels.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Update thực hiện một chu kỳ read-modify-write nguyên tử trên document.
// fn nhận con trỏ tới slice sections để sửa tại chỗ; fn trả về lỗi thì
// document không bị ghi lại. Lỗi filesystem/JSON được convert sang taxonomy.
func (s *SectionStore) Update(ctx context.Context, fn func(sections *[]portfoliomodels.Section) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}

	if err := fn(&sections); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeLocked(sections)
}

// loadLocked đọc document, caller phải giữ mutex
func (s *SectionStore) loadLocked(ctx context.Context) ([]portfoliomodels.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, common.ConvertStorageError(err)
	}

	var sections []portfoliomodels.Section
	if err := json.Unmarshal(content, &sections); err != nil {
		return nil, common.NewError(common.ErrCodeStorageDecode,
			fmt.Sprintf("Nội dung sections.json không parse được: %v", err),
			common.StatusInternalServerError, err)
	}

	// Document rỗng hợp lệ là mảng rỗng, không phải nil
	if sections == nil {
		sections = []portfoliomodels.Section{}
	}

	return sections, nil
}

// writeLocked ghi toàn bộ document xuống đĩa (pretty-print 2 space
// để người quản trị có thể đọc và sửa tay), caller phải giữ mutex
func (s *SectionStore) writeLocked(sections []portfoliomodels.Section) error {
	content, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return common.NewError(common.ErrCodeStorageWrite,
			fmt.Sprintf("Không serialize được sections: %v", err),
			common.StatusInternalServerError, err)
	}

	if err := os.WriteFile(s.filePath, content, 0644); err != nil {
		return common.ConvertStorageError(err)
	}
	return nil
}
