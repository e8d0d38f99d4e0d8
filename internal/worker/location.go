package worker

import (
	"fmt"
	"time"
)

// loadLocation load timezone cấu hình. Tên không hợp lệ là lỗi cấu hình,
// trả lỗi thay vì im lặng đổi giờ chạy sang timezone khác.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q không hợp lệ: %w", name, err)
	}
	return location, nil
}
