// Package service - Test bất biến một ảnh profile duy nhất.
package service

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"

	"portfolio_api/internal/common"
	"portfolio_api/internal/storage"
)

func newTestProfileService(t *testing.T) *ProfileService {
	t.Helper()
	return &ProfileService{
		store: storage.NewAssetStore(filepath.Join(t.TempDir(), "profile")),
	}
}

// makeImageHeader tạo multipart.FileHeader chứa một ảnh PNG thật
// (để bước tạo thumbnail decode được)
func makeImageHeader(t *testing.T, fileName string) *multipart.FileHeader {
	t.Helper()
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	return makeRawHeader(t, fileName, img.Bytes())
}

// makeRawHeader tạo multipart.FileHeader với nội dung tùy ý
func makeRawHeader(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
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
	return form.File["image"][0]
}

func TestProfileService_GetImageInfoChuaCoAnh(t *testing.T) {
	svc := newTestProfileService(t)

	info, err := svc.GetImageInfo()
	if err != nil {
		t.Fatalf("GetImageInfo trả về lỗi: %v", err)
	}
	// Chưa có ảnh: imageUrl null, không phải lỗi
	if info.ImageURL != nil {
		t.Errorf("ImageURL = %v, muốn nil", *info.ImageURL)
	}
}

func TestProfileService_Upload(t *testing.T) {
	svc := newTestProfileService(t)

	info, err := svc.Upload(makeImageHeader(t, "avatar.png"))
	if err != nil {
		t.Fatalf("Upload trả về lỗi: %v", err)
	}
	if info.ImageURL == nil || *info.ImageURL != "/profile/profile.png" {
		t.Errorf("ImageURL = %v, muốn /profile/profile.png", info.ImageURL)
	}
	// PNG 8x8 hợp lệ: thumbnail phải được tạo
	if info.ThumbnailURL == nil || *info.ThumbnailURL != "/profile/profile_thumb.png" {
		t.Errorf("ThumbnailURL = %v, muốn /profile/profile_thumb.png", info.ThumbnailURL)
	}
	if !svc.store.Exists("profile.png") || !svc.store.Exists("profile_thumb.png") {
		t.Error("File ảnh hoặc thumbnail không tồn tại trên đĩa")
	}
}

func TestProfileService_UploadThayTheAnhCu(t *testing.T) {
	svc := newTestProfileService(t)

	if _, err := svc.Upload(makeImageHeader(t, "cu.png")); err != nil {
		t.Fatal(err)
	}
	// Đổi sang đuôi khác: ảnh cũ (.png) phải bị xóa
	if _, err := svc.Upload(makeRawHeader(t, "moi.svg", []byte("<svg/>"))); err != nil {
		t.Fatalf("Upload lần hai trả về lỗi: %v", err)
	}

	files, err := svc.store.ListFiles("")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "profile.svg" {
		t.Errorf("Store sau khi thay ảnh = %v, muốn chỉ [profile.svg]", files)
	}

	info, err := svc.GetImageInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.ImageURL == nil || *info.ImageURL != "/profile/profile.svg" {
		t.Errorf("ImageURL = %v", info.ImageURL)
	}
	// SVG không có thumbnail
	if info.ThumbnailURL != nil {
		t.Errorf("ThumbnailURL = %v, svg không được tạo thumbnail", *info.ThumbnailURL)
	}
}

func TestProfileService_UploadDinhDangSai(t *testing.T) {
	svc := newTestProfileService(t)

	_, err := svc.Upload(makeRawHeader(t, "tai-lieu.pdf", []byte("pdf")))
	if err == nil {
		t.Fatal("Upload file không phải ảnh phải trả về lỗi")
	}
	var cerr *common.Error
	if !errors.As(err, &cerr) || cerr.StatusCode != common.StatusBadRequest {
		t.Errorf("Lỗi phải là 400, got %v", err)
	}
}

func TestProfileService_UploadThieuFile(t *testing.T) {
	svc := newTestProfileService(t)

	_, err := svc.Upload(nil)
	var cerr *common.Error
	if !errors.As(err, &cerr) || cerr.StatusCode != common.StatusBadRequest {
		t.Errorf("Upload không có file phải trả về 400, got %v", err)
	}
}

func TestProfileService_UploadAnhHongVanThanhCong(t *testing.T) {
	svc := newTestProfileService(t)

	// Nội dung không decode được: thumbnail thất bại nhưng upload vẫn OK
	info, err := svc.Upload(makeRawHeader(t, "hong.png", []byte("không phải png")))
	if err != nil {
		t.Fatalf("Upload trả về lỗi: %v", err)
	}
	if info.ImageURL == nil {
		t.Fatal("ImageURL nil dù upload thành công")
	}
	if info.ThumbnailURL != nil {
		t.Error("ThumbnailURL phải nil khi không decode được ảnh")
	}
	if !svc.store.Exists("profile.png") {
		t.Error("Ảnh gốc không được lưu")
	}
}

func TestProfileService_GetThumbnailFallback(t *testing.T) {
	svc := newTestProfileService(t)
	if err := svc.store.EnsureRoot(); err != nil {
		t.Fatal(err)
	}
	if err := svc.store.SaveFile("profile.svg", strings.NewReader("<svg/>")); err != nil {
		t.Fatal(err)
	}

	// Không có thumbnail: fallback về ảnh gốc
	name, _, err := svc.GetThumbnailFile()
	if err != nil {
		t.Fatalf("GetThumbnailFile trả về lỗi: %v", err)
	}
	if name != "profile.svg" {
		t.Errorf("GetThumbnailFile = %q, muốn fallback profile.svg", name)
	}
}
