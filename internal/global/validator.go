package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("safe_filename", validateSafeFileName)
}

// validateNoXSS kiểm tra XSS trong các field text người dùng nhập (title, description, ...)
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerHTML",
		"fromCharCode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateSafeFileName kiểm tra định danh file/asset không chứa ký tự đường dẫn.
// Dùng cho videoId và fileName lấy từ URL params để chặn path traversal ngay từ DTO.
func validateSafeFileName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Rỗng để required xử lý
	}
	if strings.Contains(value, "..") {
		return false
	}
	if strings.ContainsAny(value, "/\\") {
		return false
	}
	return true
}
