package utility

import (
	"path/filepath"
	"strings"
)

// imageExtensions là các đuôi ảnh được phục vụ qua API
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// imageContentTypes map đuôi file sang Content-Type tương ứng
var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// SanitizeFileName kiểm tra định danh file lấy từ URL có an toàn không.
// Trả về basename và false nếu giá trị chứa ký tự đường dẫn (.. , / , \)
// hoặc basename khác với giá trị gốc (dấu hiệu path traversal).
func SanitizeFileName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return "", false
	}
	base := filepath.Base(name)
	if base != name || base == "." {
		return "", false
	}
	return base, true
}

// IsImageExt kiểm tra đuôi file (dạng ".jpg") có phải ảnh được hỗ trợ không
func IsImageExt(ext string) bool {
	return imageExtensions[strings.ToLower(ext)]
}

// IsImageFileName kiểm tra tên file có đuôi ảnh được hỗ trợ không
func IsImageFileName(name string) bool {
	return IsImageExt(filepath.Ext(name))
}

// ImageContentType trả về Content-Type theo đuôi file ảnh.
// Đuôi không nhận dạng được trả về image/jpeg (giữ hành vi cũ của hệ thống).
func ImageContentType(name string) string {
	if ct, ok := imageContentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "image/jpeg"
}

// ParseHashtags tách chuỗi hashtags phân cách bằng dấu phẩy thành slice,
// bỏ khoảng trắng thừa và phần tử rỗng.
func ParseHashtags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// NormalizeSectionName đảm bảo tên section luôn bắt đầu bằng ký tự '#'
func NormalizeSectionName(name string) string {
	if strings.HasPrefix(name, "#") {
		return name
	}
	return "#" + name
}
