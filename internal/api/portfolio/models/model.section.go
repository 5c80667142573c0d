// Package models định nghĩa các model của domain portfolio.
// Toàn bộ document là một mảng Section, được lưu nguyên khối
// trong file sections.json.
package models

// Trạng thái hiển thị của section trên trang public
const (
	SectionStatusOpened = "opened" // Section đang mở, hiển thị trên trang public
	SectionStatusClosed = "closed" // Section đang đóng, ẩn khỏi trang public
)

// Section đại diện cho một nhóm nội dung trên trang portfolio
// (ví dụ: "#mv", "#commercial"). Tên section luôn có tiền tố "#".
type Section struct {
	ID     string `json:"id"`     // UUID của section
	Name   string `json:"name"`   // Tên section, luôn bắt đầu bằng "#"
	Status string `json:"status"` // Trạng thái: opened | closed
	Items  []Item `json:"items"`  // Danh sách item thuộc section
}

// Item đại diện cho một mục nội dung trong section, thường gắn với
// một video và một thư mục ảnh cùng định danh videoId.
type Item struct {
	ID            string   `json:"id"`                      // UUID của item
	Title         string   `json:"title"`                   // Tiêu đề hiển thị
	Hashtags      []string `json:"hashtags"`                // Danh sách hashtag
	JoinRole      string   `json:"joinRole,omitempty"`      // Vai trò tham gia dự án
	Description   string   `json:"description,omitempty"`   // Mô tả chi tiết
	VideoID       string   `json:"videoId,omitempty"`       // Định danh asset video (UUID)
	VideoFileName string   `json:"videoFileName,omitempty"` // Tên file video gốc do client upload
	CreatedAt     string   `json:"createdAt"`               // Thời điểm tạo, định dạng RFC3339
}

// FindSectionByID tìm section theo id trong document, trả về con trỏ
// tới phần tử trong slice để caller có thể sửa tại chỗ
func FindSectionByID(sections []Section, id string) *Section {
	for i := range sections {
		if sections[i].ID == id {
			return &sections[i]
		}
	}
	return nil
}

// FindSectionByName tìm section theo tên đã chuẩn hóa (có tiền tố "#")
func FindSectionByName(sections []Section, name string) *Section {
	for i := range sections {
		if sections[i].Name == name {
			return &sections[i]
		}
	}
	return nil
}

// FindItemByID tìm item theo id trên toàn bộ document, trả về section
// chứa item và vị trí của item trong section đó
func FindItemByID(sections []Section, itemID string) (*Section, int) {
	for i := range sections {
		for j := range sections[i].Items {
			if sections[i].Items[j].ID == itemID {
				return &sections[i], j
			}
		}
	}
	return nil, -1
}
