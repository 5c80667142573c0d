// Package utility - Test parse Range header cho video streaming.
package utility

import (
	"errors"
	"testing"

	"portfolio_api/internal/common"
)

func TestParseRange_KhoangDayDu(t *testing.T) {
	r, err := ParseRange("bytes=0-99", 1000)
	if err != nil {
		t.Fatalf("ParseRange trả về lỗi: %v", err)
	}
	if r.Start != 0 || r.End != 99 {
		t.Errorf("khoảng = %d-%d, muốn 0-99", r.Start, r.End)
	}
	if r.Length() != 100 {
		t.Errorf("Length = %d, muốn 100", r.Length())
	}
	if r.ContentRange() != "bytes 0-99/1000" {
		t.Errorf("ContentRange = %q", r.ContentRange())
	}
}

func TestParseRange_KhoangMo(t *testing.T) {
	// "bytes=500-": từ byte 500 đến hết file
	r, err := ParseRange("bytes=500-", 1000)
	if err != nil {
		t.Fatalf("ParseRange trả về lỗi: %v", err)
	}
	if r.Start != 500 || r.End != 999 {
		t.Errorf("khoảng = %d-%d, muốn 500-999", r.Start, r.End)
	}
}

func TestParseRange_SuffixRange(t *testing.T) {
	// "bytes=-200": 200 byte cuối cùng
	r, err := ParseRange("bytes=-200", 1000)
	if err != nil {
		t.Fatalf("ParseRange trả về lỗi: %v", err)
	}
	if r.Start != 800 || r.End != 999 {
		t.Errorf("khoảng = %d-%d, muốn 800-999", r.Start, r.End)
	}

	// Suffix lớn hơn file: trả về toàn bộ file
	r, err = ParseRange("bytes=-5000", 1000)
	if err != nil {
		t.Fatalf("ParseRange trả về lỗi: %v", err)
	}
	if r.Start != 0 || r.End != 999 {
		t.Errorf("khoảng = %d-%d, muốn 0-999", r.Start, r.End)
	}
}

func TestParseRange_EndVuotQuaSize(t *testing.T) {
	// End vượt quá size phải được cắt về size-1 (hành vi chuẩn của HTTP Range)
	r, err := ParseRange("bytes=900-5000", 1000)
	if err != nil {
		t.Fatalf("ParseRange trả về lỗi: %v", err)
	}
	if r.End != 999 {
		t.Errorf("End = %d, muốn 999", r.End)
	}
}

func TestParseRange_NhieuKhoang(t *testing.T) {
	// Nhiều khoảng: chỉ lấy khoảng đầu tiên
	r, err := ParseRange("bytes=0-49, 100-199", 1000)
	if err != nil {
		t.Fatalf("ParseRange trả về lỗi: %v", err)
	}
	if r.Start != 0 || r.End != 49 {
		t.Errorf("khoảng = %d-%d, muốn 0-49", r.Start, r.End)
	}
}

func TestParseRange_KhongHopLe(t *testing.T) {
	cases := []struct {
		header string
		size   int64
	}{
		{"", 1000},
		{"bytes=", 1000},
		{"bytes=-", 1000},
		{"bytes=abc-def", 1000},
		{"bytes=100-50", 1000},   // end < start
		{"bytes=1000-", 1000},    // start >= size
		{"bytes=2000-3000", 100}, // hoàn toàn ngoài file
		{"items=0-10", 1000},     // sai đơn vị
	}
	for _, c := range cases {
		_, err := ParseRange(c.header, c.size)
		if err == nil {
			t.Errorf("ParseRange(%q, %d) phải trả về lỗi", c.header, c.size)
			continue
		}
		if !errors.Is(err, common.ErrRangeNotSatisfiable) {
			t.Errorf("ParseRange(%q) lỗi sai loại: %v", c.header, err)
		}
	}
}
