package sync

import (
	"sync/atomic"
	"time"
)

// Progress giữ bộ đếm của một lần chạy sync. Mỗi run có progress riêng,
// không dùng chung state giữa các run. An toàn khi nhiều goroutine cùng cập nhật.
type Progress struct {
	Processed atomic.Int64
	Synced    atomic.Int64
	Failed    atomic.Int64

	lastLogAt atomic.Int64 // UnixMilli của lần log gần nhất
}

// NewProgress tạo progress mới cho một lần chạy.
func NewProgress() *Progress {
	return &Progress{}
}

// MarkSynced ghi nhận một item thành công.
func (p *Progress) MarkSynced() {
	p.Processed.Add(1)
	p.Synced.Add(1)
}

// MarkFailed ghi nhận một item thất bại.
func (p *Progress) MarkFailed() {
	p.Processed.Add(1)
	p.Failed.Add(1)
}

// ShouldLog trả về true tối đa một lần mỗi interval, để log tiến trình
// thưa thay vì mỗi item một dòng.
func (p *Progress) ShouldLog(interval time.Duration) bool {
	now := time.Now().UnixMilli()
	last := p.lastLogAt.Load()
	if now-last < interval.Milliseconds() {
		return false
	}
	return p.lastLogAt.CompareAndSwap(last, now)
}

// Snapshot trả về giá trị hiện tại của các bộ đếm.
func (p *Progress) Snapshot() (processed, synced, failed int64) {
	return p.Processed.Load(), p.Synced.Load(), p.Failed.Load()
}
