// Package storage - Test AssetStore trên thư mục tạm.
package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"portfolio_api/internal/common"
)

func newTestAssetStore(t *testing.T) *AssetStore {
	t.Helper()
	store := NewAssetStore(filepath.Join(t.TempDir(), "videos"))
	if err := store.EnsureRoot(); err != nil {
		t.Fatalf("EnsureRoot trả về lỗi: %v", err)
	}
	return store
}

func TestAssetStore_SaveVaOpen(t *testing.T) {
	store := newTestAssetStore(t)

	if err := store.SaveFile("abc.mp4", strings.NewReader("video data")); err != nil {
		t.Fatalf("SaveFile trả về lỗi: %v", err)
	}

	if !store.Exists("abc.mp4") {
		t.Error("Exists không thấy file vừa ghi")
	}

	info, err := store.Stat("abc.mp4")
	if err != nil {
		t.Fatalf("Stat trả về lỗi: %v", err)
	}
	if info.Size() != int64(len("video data")) {
		t.Errorf("Size = %d, muốn %d", info.Size(), len("video data"))
	}
}

func TestAssetStore_SaveFileTuTaoThuMucGoc(t *testing.T) {
	// Store chưa từng gọi EnsureRoot: SaveFile phải tự tạo thư mục gốc
	store := NewAssetStore(filepath.Join(t.TempDir(), "videos"))

	if err := store.SaveFile("vid-1.mp4", strings.NewReader("data")); err != nil {
		t.Fatalf("SaveFile trên store chưa có thư mục gốc trả về lỗi: %v", err)
	}
	if !store.Exists("vid-1.mp4") {
		t.Error("File không tồn tại sau SaveFile trên store chưa seed")
	}
}

func TestAssetStore_SaveFileIn(t *testing.T) {
	store := newTestAssetStore(t)

	// SaveFileIn phải tự tạo thư mục con
	if err := store.SaveFileIn("vid-1", "a.jpg", strings.NewReader("img")); err != nil {
		t.Fatalf("SaveFileIn trả về lỗi: %v", err)
	}
	if !store.Exists("vid-1", "a.jpg") {
		t.Error("File trong thư mục con không tồn tại sau SaveFileIn")
	}
}

func TestAssetStore_FindByStem(t *testing.T) {
	store := newTestAssetStore(t)
	if err := store.SaveFile("uuid-1.mp4", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveFile("uuid-2.webm", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	name, err := store.FindByStem("uuid-2")
	if err != nil {
		t.Fatalf("FindByStem trả về lỗi: %v", err)
	}
	if name != "uuid-2.webm" {
		t.Errorf("FindByStem = %q, muốn uuid-2.webm", name)
	}

	// Stem là tiền tố của tên khác không được match (uuid-1 vs uuid-10)
	if err := store.SaveFile("uuid-10.mp4", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	name, err = store.FindByStem("uuid-1")
	if err != nil {
		t.Fatalf("FindByStem trả về lỗi: %v", err)
	}
	if name != "uuid-1.mp4" {
		t.Errorf("FindByStem = %q, muốn uuid-1.mp4", name)
	}

	_, err = store.FindByStem("khong-ton-tai")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("FindByStem stem không tồn tại phải trả về ErrNotFound, got %v", err)
	}
}

func TestAssetStore_RemoveIdempotent(t *testing.T) {
	store := newTestAssetStore(t)
	if err := store.SaveFile("a.mp4", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	if err := store.Remove("a.mp4"); err != nil {
		t.Fatalf("Remove trả về lỗi: %v", err)
	}
	// Xóa lần hai file đã mất không được coi là lỗi
	if err := store.Remove("a.mp4"); err != nil {
		t.Errorf("Remove file không tồn tại phải im lặng, got %v", err)
	}
}

func TestAssetStore_ListFiles(t *testing.T) {
	store := newTestAssetStore(t)

	// Thư mục con chưa tồn tại: danh sách rỗng, không lỗi
	files, err := store.ListFiles("chua-co")
	if err != nil {
		t.Fatalf("ListFiles thư mục không tồn tại trả về lỗi: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("ListFiles thư mục không tồn tại = %v, muốn rỗng", files)
	}

	for _, name := range []string{"b.jpg", "a.png", "c.webp"} {
		if err := store.SaveFileIn("vid-1", name, strings.NewReader("x")); err != nil {
			t.Fatal(err)
		}
	}

	files, err = store.ListFiles("vid-1")
	if err != nil {
		t.Fatalf("ListFiles trả về lỗi: %v", err)
	}
	want := []string{"a.png", "b.jpg", "c.webp"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ListFiles = %v, muốn %v (sắp xếp alphabet)", files, want)
	}
}

func TestAssetStore_ListSubdirs(t *testing.T) {
	store := NewAssetStore(filepath.Join(t.TempDir(), "images"))

	// Thư mục gốc chưa tồn tại: danh sách rỗng
	dirs, err := store.ListSubdirs()
	if err != nil {
		t.Fatalf("ListSubdirs trả về lỗi: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("ListSubdirs thư mục gốc chưa có = %v", dirs)
	}

	if err := store.SaveFileIn("vid-b", "a.jpg", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveFileIn("vid-a", "a.jpg", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveFile("file-goc.txt", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	dirs, err = store.ListSubdirs()
	if err != nil {
		t.Fatalf("ListSubdirs trả về lỗi: %v", err)
	}
	want := []string{"vid-a", "vid-b"}
	if !reflect.DeepEqual(dirs, want) {
		t.Errorf("ListSubdirs = %v, muốn %v (chỉ thư mục, sắp xếp)", dirs, want)
	}
}

func TestAssetStore_RemoveDir(t *testing.T) {
	store := newTestAssetStore(t)
	if err := store.SaveFileIn("vid-1", "a.jpg", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	if err := store.RemoveDir("vid-1"); err != nil {
		t.Fatalf("RemoveDir trả về lỗi: %v", err)
	}
	if store.Exists("vid-1") {
		t.Error("Thư mục vẫn tồn tại sau RemoveDir")
	}
	// Xóa thư mục không tồn tại không coi là lỗi
	if err := store.RemoveDir("vid-1"); err != nil {
		t.Errorf("RemoveDir thư mục đã mất phải im lặng, got %v", err)
	}
}
