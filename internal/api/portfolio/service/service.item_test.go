// Package service - Test workflow upload/xóa item với store trên thư mục tạm.
package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"testing"

	portfoliodto "portfolio_api/internal/api/portfolio/dto"
	portfoliomodels "portfolio_api/internal/api/portfolio/models"
	"portfolio_api/internal/common"
	"portfolio_api/internal/storage"
)

// newTestItemService tạo ItemService chạy hoàn toàn trên thư mục tạm của test
func newTestItemService(t *testing.T) *ItemService {
	t.Helper()
	root := t.TempDir()
	store := storage.NewSectionStore(filepath.Join(root, "data", "sections.json"))
	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile trả về lỗi: %v", err)
	}
	return &ItemService{
		store:  store,
		videos: storage.NewAssetStore(filepath.Join(root, "public", "videos")),
		images: storage.NewAssetStore(filepath.Join(root, "public", "images")),
	}
}

// seedSection thêm một section rỗng vào store để upload có chỗ commit
func seedSection(t *testing.T, store *storage.SectionStore, id, name string) {
	t.Helper()
	err := store.Update(context.Background(), func(sections *[]portfoliomodels.Section) error {
		*sections = append(*sections, portfoliomodels.Section{
			ID:     id,
			Name:   name,
			Status: portfoliomodels.SectionStatusClosed,
			Items:  []portfoliomodels.Item{},
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Không seed được section: %v", err)
	}
}

// makeFileHeader tạo multipart.FileHeader thật từ nội dung trong bộ nhớ
func makeFileHeader(t *testing.T, fieldName, fileName, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[fieldName][0]
}

func TestItemService_UploadDayDu(t *testing.T) {
	svc := newTestItemService(t)
	seedSection(t, svc.store, "sec-1", "#Múa")

	input := &portfoliodto.ItemUploadInput{
		SectionID: "sec-1",
		Title:     "Tiết mục mở màn",
		Hashtags:  "#dance, #folk",
		JoinRole:  "Biên đạo",
	}
	video := makeFileHeader(t, "video", "phim-goc.mp4", "video bytes")
	images := []*multipart.FileHeader{
		makeFileHeader(t, "images", "canh-1.jpg", "img1"),
		makeFileHeader(t, "images", "canh-2.png", "img2"),
	}

	item, err := svc.Upload(context.Background(), input, video, images)
	if err != nil {
		t.Fatalf("Upload trả về lỗi: %v", err)
	}

	if item.VideoID == "" {
		t.Fatal("Item sau upload thiếu videoId")
	}
	if item.VideoFileName != "phim-goc.mp4" {
		t.Errorf("VideoFileName = %q, muốn tên gốc", item.VideoFileName)
	}
	if len(item.Hashtags) != 2 {
		t.Errorf("Hashtags = %v, muốn 2 phần tử", item.Hashtags)
	}
	if item.CreatedAt == "" {
		t.Error("CreatedAt phải được tự sinh khi client không gửi")
	}

	// File video lưu theo UUID + đuôi gốc
	if !svc.videos.Exists(item.VideoID + ".mp4") {
		t.Error("File video không tồn tại trên đĩa sau upload")
	}

	// Gallery ảnh nằm trong thư mục mang tên videoId
	files, err := svc.images.ListFiles(item.VideoID)
	if err != nil {
		t.Fatalf("ListFiles trả về lỗi: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Gallery có %d file, muốn 2: %v", len(files), files)
	}

	// Item phải đã được commit vào sections.json
	sections, err := svc.store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 || len(sections[0].Items) != 1 {
		t.Fatalf("Document sau upload = %+v", sections)
	}
	if sections[0].Items[0].ID != item.ID {
		t.Error("Item trong document khác item trả về")
	}
}

func TestItemService_UploadKhongCoVideo(t *testing.T) {
	svc := newTestItemService(t)
	seedSection(t, svc.store, "sec-1", "#Múa")

	input := &portfoliodto.ItemUploadInput{
		SectionID: "sec-1",
		Title:     "Chỉ metadata",
		CreatedAt: "2026-01-15T10:00:00Z",
	}

	item, err := svc.Upload(context.Background(), input, nil, nil)
	if err != nil {
		t.Fatalf("Upload trả về lỗi: %v", err)
	}
	if item.VideoID != "" {
		t.Errorf("Item không video nhưng có videoId %q", item.VideoID)
	}
	if item.CreatedAt != "2026-01-15T10:00:00Z" {
		t.Errorf("CreatedAt = %q, phải giữ giá trị client gửi", item.CreatedAt)
	}
}

func TestItemService_UploadSectionKhongTonTai_Rollback(t *testing.T) {
	svc := newTestItemService(t)
	seedSection(t, svc.store, "sec-1", "#Múa")

	input := &portfoliodto.ItemUploadInput{
		SectionID: "sec-khong-co",
		Title:     "Sẽ thất bại",
	}
	video := makeFileHeader(t, "video", "clip.mp4", "video bytes")
	images := []*multipart.FileHeader{
		makeFileHeader(t, "images", "a.jpg", "img"),
	}

	_, err := svc.Upload(context.Background(), input, video, images)
	if err == nil {
		t.Fatal("Upload vào section không tồn tại phải trả về lỗi")
	}
	var cerr *common.Error
	if !errors.As(err, &cerr) || cerr.StatusCode != common.StatusNotFound {
		t.Errorf("Lỗi phải là 404, got %v", err)
	}

	// Rollback phải gỡ hết file đã ghi, không để lại asset mồ côi
	videoFiles, _ := svc.videos.ListFiles("")
	if len(videoFiles) != 0 {
		t.Errorf("Rollback để sót file video: %v", videoFiles)
	}
	galleries, _ := svc.images.ListSubdirs()
	if len(galleries) != 0 {
		t.Errorf("Rollback để sót thư mục ảnh: %v", galleries)
	}
}

func TestItemService_UploadBoQuaTenAnhKhongAnToan(t *testing.T) {
	svc := newTestItemService(t)
	seedSection(t, svc.store, "sec-1", "#Múa")

	input := &portfoliodto.ItemUploadInput{
		SectionID: "sec-1",
		Title:     "Upload với ảnh tên xấu",
	}
	video := makeFileHeader(t, "video", "clip.mp4", "video bytes")
	images := []*multipart.FileHeader{
		makeFileHeader(t, "images", "hop-le.jpg", "ok"),
		makeFileHeader(t, "images", "..", "traversal"),
	}

	item, err := svc.Upload(context.Background(), input, video, images)
	if err != nil {
		t.Fatalf("Upload trả về lỗi: %v", err)
	}

	// File tên không an toàn bị bỏ qua, file hợp lệ vẫn được lưu
	files, err := svc.images.ListFiles(item.VideoID)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "hop-le.jpg" {
		t.Errorf("Gallery = %v, muốn chỉ [hop-le.jpg]", files)
	}
}

func TestItemService_UploadContextHuy(t *testing.T) {
	svc := newTestItemService(t)
	seedSection(t, svc.store, "sec-1", "#Múa")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := &portfoliodto.ItemUploadInput{SectionID: "sec-1", Title: "Bị hủy"}
	_, err := svc.Upload(ctx, input, nil, nil)
	if !errors.Is(err, common.ErrClientAborted) {
		t.Errorf("Context hủy phải map sang ErrClientAborted (499), got %v", err)
	}
}

func TestItemService_UploadTimeout(t *testing.T) {
	svc := newTestItemService(t)
	seedSection(t, svc.store, "sec-1", "#Múa")

	ctx, cancel := context.WithTimeout(context.Background(), -1)
	defer cancel()

	input := &portfoliodto.ItemUploadInput{SectionID: "sec-1", Title: "Quá hạn"}
	_, err := svc.Upload(ctx, input, nil, nil)
	if !errors.Is(err, common.ErrUploadTimeout) {
		t.Errorf("Deadline quá hạn phải map sang ErrUploadTimeout (408), got %v", err)
	}
}

func TestItemService_Delete(t *testing.T) {
	svc := newTestItemService(t)
	seedSection(t, svc.store, "sec-1", "#Múa")

	input := &portfoliodto.ItemUploadInput{SectionID: "sec-1", Title: "Sẽ bị xóa"}
	video := makeFileHeader(t, "video", "clip.mp4", "video bytes")
	images := []*multipart.FileHeader{makeFileHeader(t, "images", "a.jpg", "img")}
	item, err := svc.Upload(context.Background(), input, video, images)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("Delete trả về lỗi: %v", err)
	}

	// Item phải biến mất khỏi document
	sections, err := svc.store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sections[0].Items) != 0 {
		t.Errorf("Item vẫn còn trong document: %+v", sections[0].Items)
	}

	// Asset phải được dọn theo stem, không phụ thuộc đuôi file
	if _, err := svc.videos.FindByStem(item.VideoID); !errors.Is(err, common.ErrNotFound) {
		t.Error("File video vẫn còn sau khi xóa item")
	}
	galleries, _ := svc.images.ListSubdirs()
	if len(galleries) != 0 {
		t.Errorf("Thư mục ảnh vẫn còn sau khi xóa item: %v", galleries)
	}
}

func TestItemService_DeleteKhongTonTai(t *testing.T) {
	svc := newTestItemService(t)
	seedSection(t, svc.store, "sec-1", "#Múa")

	err := svc.Delete(context.Background(), "item-khong-co")
	if err == nil {
		t.Fatal("Xóa item không tồn tại phải trả về lỗi")
	}
	var cerr *common.Error
	if !errors.As(err, &cerr) || cerr.StatusCode != common.StatusNotFound {
		t.Errorf("Lỗi phải là 404, got %v", err)
	}
}

func TestConvertUploadError(t *testing.T) {
	if got := convertUploadError(context.DeadlineExceeded); !errors.Is(got, common.ErrUploadTimeout) {
		t.Errorf("DeadlineExceeded → %v, muốn ErrUploadTimeout", got)
	}
	if got := convertUploadError(context.Canceled); !errors.Is(got, common.ErrClientAborted) {
		t.Errorf("Canceled → %v, muốn ErrClientAborted", got)
	}
	if got := convertUploadError(nil); got != nil {
		t.Errorf("nil → %v, muốn nil", got)
	}
	// Lỗi khác giữ nguyên taxonomy storage
	other := errors.New("lỗi lạ")
	if got := convertUploadError(other); got == nil {
		t.Error("Lỗi khác không được nuốt mất")
	}
}
