// Package dto định nghĩa các cấu trúc input/output của domain auth.
package dto

// LoginInput dữ liệu đăng nhập quản trị
type LoginInput struct {
	Password string `json:"password" validate:"required"` // Mật khẩu quản trị
}

// LoginResult kết quả đăng nhập thành công
type LoginResult struct {
	Token     string `json:"token"`     // JWT dùng cho các request quản trị
	ExpiresAt string `json:"expiresAt"` // Thời điểm token hết hạn, định dạng RFC3339
}
