// Package worker - Test một lần quét dọn asset mồ côi.
package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	portfoliomodels "portfolio_api/internal/api/portfolio/models"
	"portfolio_api/internal/storage"
)

func newTestWorker(t *testing.T) *OrphanCleanupWorker {
	t.Helper()
	root := t.TempDir()
	store := storage.NewSectionStore(filepath.Join(root, "data", "sections.json"))
	if err := store.EnsureFile(); err != nil {
		t.Fatal(err)
	}
	return &OrphanCleanupWorker{
		store:    store,
		videos:   storage.NewAssetStore(filepath.Join(root, "public", "videos")),
		images:   storage.NewAssetStore(filepath.Join(root, "public", "images")),
		interval: time.Hour,
		minAge:   time.Hour,
	}
}

// backdate lùi mtime của một đường dẫn về quá khứ để vượt ngưỡng minAge
func backdate(t *testing.T, path string, age time.Duration) {
	t.Helper()
	past := time.Now().Add(-age)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}
}

func TestOrphanCleanupWorker_Sweep(t *testing.T) {
	w := newTestWorker(t)

	// vid-ref được item tham chiếu, vid-orphan thì không
	err := w.store.Update(context.Background(), func(sections *[]portfoliomodels.Section) error {
		*sections = append(*sections, portfoliomodels.Section{
			ID:   "sec-1",
			Name: "#Test",
			Items: []portfoliomodels.Item{
				{ID: "item-1", Title: "Còn dùng", VideoID: "vid-ref"},
			},
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"vid-ref.mp4", "vid-orphan.mp4"} {
		if err := w.videos.SaveFile(name, strings.NewReader("x")); err != nil {
			t.Fatal(err)
		}
		backdate(t, w.videos.Path(name), 2*time.Hour)
	}
	for _, dir := range []string{"vid-ref", "vid-orphan"} {
		if err := w.images.SaveFileIn(dir, "a.jpg", strings.NewReader("x")); err != nil {
			t.Fatal(err)
		}
		backdate(t, w.images.Path(dir), 2*time.Hour)
	}

	removed, err := w.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep trả về lỗi: %v", err)
	}
	if removed != 2 {
		t.Errorf("Sweep xóa %d asset, muốn 2 (1 video + 1 gallery)", removed)
	}

	// Asset được tham chiếu phải còn nguyên
	if !w.videos.Exists("vid-ref.mp4") {
		t.Error("Sweep xóa nhầm video đang được tham chiếu")
	}
	if !w.images.Exists("vid-ref", "a.jpg") {
		t.Error("Sweep xóa nhầm gallery đang được tham chiếu")
	}

	// Asset mồ côi phải biến mất
	if w.videos.Exists("vid-orphan.mp4") {
		t.Error("Video mồ côi vẫn còn sau Sweep")
	}
	if w.images.Exists("vid-orphan") {
		t.Error("Gallery mồ côi vẫn còn sau Sweep")
	}
}

func TestOrphanCleanupWorker_SweepGiuFileMoi(t *testing.T) {
	w := newTestWorker(t)

	// File mồ côi nhưng chưa đủ tuổi (có thể là upload đang chạy)
	if err := w.videos.SaveFile("vid-moi.mp4", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	removed, err := w.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep trả về lỗi: %v", err)
	}
	if removed != 0 {
		t.Errorf("Sweep xóa %d asset, file mới phải được giữ lại", removed)
	}
	if !w.videos.Exists("vid-moi.mp4") {
		t.Error("File chưa đủ tuổi bị xóa nhầm")
	}
}

func TestOrphanCleanupWorker_SweepKhoRong(t *testing.T) {
	w := newTestWorker(t)

	removed, err := w.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep trên kho rỗng trả về lỗi: %v", err)
	}
	if removed != 0 {
		t.Errorf("Sweep kho rỗng xóa %d asset", removed)
	}
}
