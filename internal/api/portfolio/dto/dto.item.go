package dto

// ItemUploadInput dữ liệu form của một lần upload item.
// File video và ảnh được lấy riêng từ multipart form, không nằm trong struct này.
type ItemUploadInput struct {
	SectionID   string `form:"sectionId" validate:"required"`             // ID section nhận item
	Title       string `form:"title" validate:"required,no_xss"`          // Tiêu đề item
	Hashtags    string `form:"hashtags" validate:"omitempty,no_xss"`      // Hashtags phân cách bằng dấu phẩy
	CreatedAt   string `form:"createdAt" validate:"omitempty"`            // Thời điểm tạo do client cung cấp (tùy chọn)
	JoinRole    string `form:"joinRole" validate:"omitempty,no_xss"`      // Vai trò tham gia (tùy chọn)
	Description string `form:"description" validate:"omitempty,no_xss"`  // Mô tả (tùy chọn)
}

// ItemIDParams tham số URI chứa id của item
type ItemIDParams struct {
	ItemID string `uri:"itemId" validate:"required"` // ID của item cần thao tác
}

// VideoIDParams tham số URI chứa định danh video.
// safe_filename chặn các giá trị chứa ký tự đường dẫn (path traversal).
type VideoIDParams struct {
	VideoID string `uri:"videoId" validate:"required,safe_filename"` // Định danh video (có hoặc không có đuôi file)
}

// ImageFileParams tham số URI để lấy một file ảnh cụ thể trong gallery
type ImageFileParams struct {
	VideoID  string `uri:"videoId" validate:"required,safe_filename"`  // Định danh video sở hữu gallery
	FileName string `uri:"fileName" validate:"required,safe_filename"` // Tên file ảnh trong gallery
}
