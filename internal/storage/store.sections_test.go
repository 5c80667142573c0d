// Package storage - Test chu kỳ read-modify-write của SectionStore.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"portfolio_api/internal/common"

	portfoliomodels "portfolio_api/internal/api/portfolio/models"
)

func newTestSectionStore(t *testing.T) *SectionStore {
	t.Helper()
	return NewSectionStore(filepath.Join(t.TempDir(), "data", "sections.json"))
}

func TestSectionStore_EnsureFile(t *testing.T) {
	store := newTestSectionStore(t)

	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile trả về lỗi: %v", err)
	}

	data, err := os.ReadFile(store.FilePath())
	if err != nil {
		t.Fatalf("Không đọc được file vừa tạo: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("File mới phải chứa mảng rỗng, got %q", string(data))
	}

	// Gọi lần hai không được ghi đè dữ liệu đã có
	if err := store.Update(context.Background(), func(sections *[]portfoliomodels.Section) error {
		*sections = append(*sections, portfoliomodels.Section{ID: "s1", Name: "#Test"})
		return nil
	}); err != nil {
		t.Fatalf("Update trả về lỗi: %v", err)
	}
	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile lần hai trả về lỗi: %v", err)
	}
	sections, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load trả về lỗi: %v", err)
	}
	if len(sections) != 1 {
		t.Errorf("EnsureFile đã ghi đè dữ liệu: còn %d sections", len(sections))
	}
}

func TestSectionStore_LoadFileChuaTonTai(t *testing.T) {
	store := newTestSectionStore(t)

	// File chưa tồn tại phải trả về danh sách rỗng, không phải lỗi
	sections, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load file chưa tồn tại trả về lỗi: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("Load file chưa tồn tại = %v, muốn rỗng", sections)
	}
}

func TestSectionStore_UpdateCommit(t *testing.T) {
	store := newTestSectionStore(t)

	err := store.Update(context.Background(), func(sections *[]portfoliomodels.Section) error {
		*sections = append(*sections, portfoliomodels.Section{
			ID:     "s1",
			Name:   "#Múa",
			Status: portfoliomodels.SectionStatusClosed,
			Items:  []portfoliomodels.Item{},
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Update trả về lỗi: %v", err)
	}

	sections, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load trả về lỗi: %v", err)
	}
	if len(sections) != 1 || sections[0].Name != "#Múa" {
		t.Errorf("Dữ liệu sau Update = %+v", sections)
	}
}

func TestSectionStore_UpdateLoiKhongGhi(t *testing.T) {
	store := newTestSectionStore(t)
	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile trả về lỗi: %v", err)
	}

	wantErr := errors.New("lỗi nghiệp vụ")
	err := store.Update(context.Background(), func(sections *[]portfoliomodels.Section) error {
		*sections = append(*sections, portfoliomodels.Section{ID: "bad"})
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update phải trả về lỗi của fn, got %v", err)
	}

	// fn trả về lỗi thì file trên đĩa không được thay đổi
	sections, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load trả về lỗi: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("Update lỗi nhưng vẫn ghi xuống đĩa: %+v", sections)
	}
}

func TestSectionStore_UpdateContextHuy(t *testing.T) {
	store := newTestSectionStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Update(ctx, func(sections *[]portfoliomodels.Section) error {
		return nil
	})
	if err == nil {
		t.Fatal("Update với context đã hủy phải trả về lỗi")
	}
}

func TestSectionStore_LoadFileHong(t *testing.T) {
	store := newTestSectionStore(t)
	if err := os.MkdirAll(filepath.Dir(store.FilePath()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.FilePath(), []byte("{không phải json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load(context.Background())
	if err == nil {
		t.Fatal("Load file JSON hỏng phải trả về lỗi")
	}
	var cerr *common.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("Lỗi phải là *common.Error, got %T", err)
	}
	if cerr.Code.Code != common.ErrCodeStorageDecode.Code {
		t.Errorf("Mã lỗi = %s, muốn %s", cerr.Code.Code, common.ErrCodeStorageDecode.Code)
	}
}

func TestSectionStore_UpdateDongThoi(t *testing.T) {
	store := newTestSectionStore(t)
	if err := store.EnsureFile(); err != nil {
		t.Fatal(err)
	}

	// 20 goroutine cùng append: mutex phải đảm bảo không mất update nào
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Update(context.Background(), func(sections *[]portfoliomodels.Section) error {
				*sections = append(*sections, portfoliomodels.Section{ID: string(rune('a' + n))})
				return nil
			})
		}(i)
	}
	wg.Wait()

	sections, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load trả về lỗi: %v", err)
	}
	if len(sections) != 20 {
		t.Errorf("Mất update khi ghi đồng thời: còn %d/20 sections", len(sections))
	}
}
