// Package dto định nghĩa các cấu trúc input/output của domain portfolio.
package dto

// SectionCreateInput dữ liệu đầu vào để tạo section mới
type SectionCreateInput struct {
	Name string `json:"name" validate:"required,no_xss"` // Tên section, tiền tố "#" được tự thêm nếu thiếu
}

// SectionIDParams tham số URI chứa id của section
type SectionIDParams struct {
	SectionID string `uri:"sectionId" validate:"required"` // ID của section cần thao tác
}

// SectionSummary thông tin rút gọn của section cho màn quản trị
type SectionSummary struct {
	ID   string `json:"id"`   // ID của section
	Name string `json:"name"` // Tên section
}
