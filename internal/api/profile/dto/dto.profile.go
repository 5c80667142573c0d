// Package dto định nghĩa các cấu trúc input/output của domain profile.
package dto

// ProfileImageInfo thông tin ảnh profile hiện tại.
// ImageURL là nil khi chưa có ảnh nào được upload.
type ProfileImageInfo struct {
	ImageURL     *string `json:"imageUrl"`               // URL ảnh gốc, nil nếu chưa có
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"` // URL thumbnail 256px, nil nếu không tạo được
}
