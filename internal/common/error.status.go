package common

import (
	"errors"
	"io/fs"
	"os"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Partial Content (dùng cho Range request khi stream video)
	StatusPartialContent = 206 // Trả về một phần nội dung theo Range header

	// Client Error Codes (4xx)
	StatusBadRequest       = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized     = 401 // Chưa xác thực
	StatusForbidden        = 403 // Không có quyền truy cập
	StatusNotFound         = 404 // Không tìm thấy tài nguyên
	StatusConflict         = 409 // Xung đột dữ liệu
	StatusRequestTimeout   = 408 // Request bị timeout (upload quá thời gian cho phép)
	StatusTooManyRequests  = 429 // Quá nhiều yêu cầu
	StatusRangeNotValid    = 416 // Range header không hợp lệ (Range Not Satisfiable)
	StatusClientClosed     = 499 // Client đóng kết nối giữa chừng (convention của nginx, không phải chuẩn)

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	// Success Messages
	MsgSuccess = "Thao tác thành công"
	MsgCreated = "Tạo mới thành công"

	// Error Messages
	MsgBadRequest      = "Yêu cầu không hợp lệ"
	MsgUnauthorized    = "Vui lòng đăng nhập"
	MsgForbidden       = "Không có quyền truy cập"
	MsgNotFound        = "Không tìm thấy tài nguyên"
	MsgConflict        = "Xung đột dữ liệu"
	MsgTooManyRequests = "Quá nhiều yêu cầu"
	MsgInternalError   = "Lỗi hệ thống"

	// Token Messages
	MsgTokenMissing = "Thiếu token xác thực"
	MsgTokenInvalid = "Token không hợp lệ"
	MsgTokenExpired = "Token đã hết hạn"

	// Validation Messages
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgStorageError    = "Lỗi tương tác với kho dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Lỗi liên quan đến token",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Lỗi thông tin đăng nhập",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	ErrCodeValidationPath = ErrorCode{
		Code:        "VAL_003",
		Category:    "Validation",
		SubCategory: "Path",
		Description: "Tên file hoặc định danh chứa ký tự đường dẫn không cho phép",
	}

	// Storage Errors (FS_xxx) - kho dữ liệu là file JSON + thư mục asset trên đĩa
	ErrCodeStorage = ErrorCode{
		Code:        "FS",
		Category:    "Storage",
		SubCategory: "General",
		Description: "Lỗi kho dữ liệu chung",
	}

	ErrCodeStorageRead = ErrorCode{
		Code:        "FS_001",
		Category:    "Storage",
		SubCategory: "Read",
		Description: "Lỗi đọc dữ liệu từ đĩa",
	}

	ErrCodeStorageWrite = ErrorCode{
		Code:        "FS_002",
		Category:    "Storage",
		SubCategory: "Write",
		Description: "Lỗi ghi dữ liệu xuống đĩa",
	}

	ErrCodeStorageDecode = ErrorCode{
		Code:        "FS_003",
		Category:    "Storage",
		SubCategory: "Decode",
		Description: "Lỗi parse nội dung file sections.json",
	}

	// Upload Errors (UPL_xxx)
	ErrCodeUpload = ErrorCode{
		Code:        "UPL",
		Category:    "Upload",
		SubCategory: "General",
		Description: "Lỗi upload chung",
	}

	ErrCodeUploadTimeout = ErrorCode{
		Code:        "UPL_001",
		Category:    "Upload",
		SubCategory: "Timeout",
		Description: "Upload vượt quá thời gian cho phép",
	}

	ErrCodeUploadAborted = ErrorCode{
		Code:        "UPL_002",
		Category:    "Upload",
		SubCategory: "Aborted",
		Description: "Client đóng kết nối khi đang upload",
	}

	ErrCodeUploadAssetID = ErrorCode{
		Code:        "UPL_003",
		Category:    "Upload",
		SubCategory: "AssetID",
		Description: "Không sinh được định danh file duy nhất sau nhiều lần thử",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is kiểm tra xem error có phải là target error không (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	// Authentication Errors
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Thông tin đăng nhập không chính xác", StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthToken, "Phiên đăng nhập đã hết hạn", StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, "Token không hợp lệ", StatusUnauthorized, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, "Thiếu token xác thực", StatusUnauthorized, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)
	ErrInvalidPath   = NewError(ErrCodeValidationPath, "Định danh chứa ký tự đường dẫn không cho phép", StatusBadRequest, nil)

	// Storage Errors
	ErrNotFound = NewError(ErrCodeStorageRead, "Không tìm thấy dữ liệu", StatusNotFound, nil)

	// Upload Errors
	ErrUploadTimeout = NewError(ErrCodeUploadTimeout, "Upload vượt quá thời gian cho phép", StatusRequestTimeout, nil)
	ErrClientAborted = NewError(ErrCodeUploadAborted, "Client đã hủy upload giữa chừng", StatusClientClosed, nil)
	ErrAssetIDRetry  = NewError(ErrCodeUploadAssetID, "Không sinh được định danh video duy nhất sau 10 lần thử", StatusInternalServerError, nil)

	// Range Errors
	ErrRangeNotSatisfiable = NewError(ErrCodeValidationFormat, "Range header không hợp lệ với kích thước file", StatusRangeNotValid, nil)
)

// ConvertStorageError chuyển đổi lỗi filesystem/JSON sang lỗi hệ thống.
// Các handler chỉ cần errors.As ra *common.Error để lấy status code.
func ConvertStorageError(err error) error {
	if err == nil {
		return nil
	}

	// Không convert các lỗi đã thuộc taxonomy (kể cả khi bị wrap)
	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	// File hoặc thư mục không tồn tại
	if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
		return ErrNotFound
	}

	// Không có quyền truy cập trên đĩa
	if errors.Is(err, fs.ErrPermission) {
		return NewError(ErrCodeStorage, "Không có quyền truy cập file trên đĩa", StatusInternalServerError, err)
	}

	// Lỗi còn lại coi như lỗi kho dữ liệu chung
	return NewError(ErrCodeStorage, MsgStorageError, StatusInternalServerError, err)
}
