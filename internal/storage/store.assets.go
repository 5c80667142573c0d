package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"portfolio_api/internal/common"
)

// ErrStoreNotRegistered trả về khi asset store chưa được đăng ký trong registry lúc khởi tạo
var ErrStoreNotRegistered = errors.New("asset store chưa được đăng ký trong registry")

// AssetStore quản lý một thư mục asset trong public (videos, images
// hoặc profile). Mọi tên file/thư mục con truyền vào đây phải được
// sanitize ở tầng trên trước, store chỉ ghép đường dẫn và thao tác đĩa.
type AssetStore struct {
	root string // Thư mục gốc của store, ví dụ public/videos
}

// NewAssetStore tạo mới AssetStore với thư mục gốc cho trước
func NewAssetStore(root string) *AssetStore {
	return &AssetStore{
		root: root,
	}
}

// Root trả về thư mục gốc của store
func (s *AssetStore) Root() string {
	return s.root
}

// Path ghép đường dẫn tuyệt đối bên trong store
func (s *AssetStore) Path(parts ...string) string {
	return filepath.Join(append([]string{s.root}, parts...)...)
}

// EnsureRoot tạo thư mục gốc nếu chưa tồn tại
func (s *AssetStore) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return common.ConvertStorageError(err)
	}
	return nil
}

// Exists kiểm tra một file/thư mục có tồn tại trong store không
func (s *AssetStore) Exists(parts ...string) bool {
	_, err := os.Stat(s.Path(parts...))
	return err == nil
}

// Stat trả về thông tin file trong store
func (s *AssetStore) Stat(parts ...string) (os.FileInfo, error) {
	info, err := os.Stat(s.Path(parts...))
	if err != nil {
		return nil, common.ConvertStorageError(err)
	}
	return info, nil
}

// Open mở file trong store để đọc (phục vụ streaming).
// Caller chịu trách nhiệm Close.
func (s *AssetStore) Open(parts ...string) (*os.File, error) {
	f, err := os.Open(s.Path(parts...))
	if err != nil {
		return nil, common.ConvertStorageError(err)
	}
	return f, nil
}

// SaveFile ghi nội dung từ reader vào file name trực tiếp dưới thư mục gốc
func (s *AssetStore) SaveFile(name string, r io.Reader) error {
	return s.saveTo(s.Path(name), r)
}

// SaveFileIn ghi nội dung từ reader vào file name trong thư mục con subdir,
// tự tạo thư mục con nếu chưa có
func (s *AssetStore) SaveFileIn(subdir, name string, r io.Reader) error {
	return s.saveTo(s.Path(subdir, name), r)
}

// saveTo ghi nội dung reader vào đường dẫn đích, tự tạo thư mục cha
// nếu chưa tồn tại (thư mục gốc của store có thể chưa được seed)
func (s *AssetStore) saveTo(dst string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return common.ConvertStorageError(err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return common.ConvertStorageError(err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		// Ghi dở dang thì xóa luôn file rác
		os.Remove(dst)
		return common.NewError(common.ErrCodeStorageWrite,
			"Lỗi ghi nội dung file asset xuống đĩa", common.StatusInternalServerError, err)
	}
	return nil
}

// Remove xóa một file trong store. File không tồn tại không coi là lỗi
// để các bước dọn dẹp có thể gọi lặp lại an toàn.
func (s *AssetStore) Remove(parts ...string) error {
	if err := os.Remove(s.Path(parts...)); err != nil && !os.IsNotExist(err) {
		return common.ConvertStorageError(err)
	}
	return nil
}

// RemoveDir xóa đệ quy một thư mục con trong store
func (s *AssetStore) RemoveDir(subdir string) error {
	if err := os.RemoveAll(s.Path(subdir)); err != nil {
		return common.ConvertStorageError(err)
	}
	return nil
}

// FindByStem tìm file đầu tiên trong thư mục gốc có tên dạng stem + phần
// mở rộng bất kỳ (ví dụ stem là UUID video thì match "uuid.mp4").
// Trả về tên file tìm được, không tìm thấy trả về ErrNotFound.
func (s *AssetStore) FindByStem(stem string) (string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return "", common.ConvertStorageError(err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, stem+".") {
			return name, nil
		}
	}
	return "", common.ErrNotFound
}

// ListSubdirs liệt kê tên các thư mục con trực tiếp của thư mục gốc.
// Thư mục gốc không tồn tại trả về danh sách rỗng.
func (s *AssetStore) ListSubdirs() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, common.ConvertStorageError(err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListFiles liệt kê tên file (không gồm thư mục con) trong thư mục con
// subdir, sắp xếp theo alphabet. Thư mục không tồn tại trả về danh sách
// rỗng thay vì lỗi, vì item chưa có ảnh là trạng thái bình thường.
func (s *AssetStore) ListFiles(subdir string) ([]string, error) {
	entries, err := os.ReadDir(s.Path(subdir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, common.ConvertStorageError(err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
