package utility

import (
	"fmt"
	"strconv"
	"strings"

	"portfolio_api/internal/common"
)

// ByteRange là khoảng byte đã resolve từ Range header cho một file có kích thước cụ thể
type ByteRange struct {
	Start int64 // Byte đầu tiên (inclusive)
	End   int64 // Byte cuối cùng (inclusive)
	Size  int64 // Tổng kích thước file
}

// Length trả về số byte của khoảng
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange trả về giá trị header Content-Range (ví dụ: "bytes 0-99/1000")
func (r ByteRange) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, r.Size)
}

// ParseRange parse Range header dạng "bytes=start-end" cho một file kích thước size.
// Chỉ hỗ trợ một khoảng duy nhất (đủ cho video streaming của trình duyệt).
// Các dạng hỗ trợ: "bytes=0-99", "bytes=100-" (đến hết file), "bytes=-500" (500 byte cuối).
// Trả về common.ErrRangeNotSatisfiable khi khoảng không hợp lệ với kích thước file.
func ParseRange(header string, size int64) (ByteRange, error) {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return ByteRange{}, common.ErrRangeNotSatisfiable
	}

	spec := strings.TrimPrefix(header, prefix)
	// Nhiều khoảng phân cách bằng dấu phẩy: chỉ lấy khoảng đầu tiên
	if idx := strings.Index(spec, ","); idx >= 0 {
		spec = spec[:idx]
	}
	spec = strings.TrimSpace(spec)

	dash := strings.Index(spec, "-")
	if dash < 0 {
		return ByteRange{}, common.ErrRangeNotSatisfiable
	}

	startStr := strings.TrimSpace(spec[:dash])
	endStr := strings.TrimSpace(spec[dash+1:])

	var start, end int64
	switch {
	case startStr == "" && endStr == "":
		return ByteRange{}, common.ErrRangeNotSatisfiable

	case startStr == "":
		// Dạng "bytes=-N": N byte cuối của file
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n <= 0 {
			return ByteRange{}, common.ErrRangeNotSatisfiable
		}
		if n > size {
			n = size
		}
		start = size - n
		end = size - 1

	default:
		var err error
		start, err = strconv.ParseInt(startStr, 10, 64)
		if err != nil || start < 0 {
			return ByteRange{}, common.ErrRangeNotSatisfiable
		}
		if endStr == "" {
			end = size - 1
		} else {
			end, err = strconv.ParseInt(endStr, 10, 64)
			if err != nil {
				return ByteRange{}, common.ErrRangeNotSatisfiable
			}
		}
	}

	if start >= size || end < start {
		return ByteRange{}, common.ErrRangeNotSatisfiable
	}
	if end >= size {
		end = size - 1
	}

	return ByteRange{Start: start, End: end, Size: size}, nil
}
