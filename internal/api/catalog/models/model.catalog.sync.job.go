// Package models - SyncJob thuộc domain catalog (sync_jobs).
// Mỗi lần trigger sync (thủ công hoặc theo lịch) tạo một job để theo dõi tiến trình.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của SyncJob
const (
	SyncJobStatusQueued    = "queued"    // Đã nhận, chưa bắt đầu chạy
	SyncJobStatusRunning   = "running"   // Đang chạy
	SyncJobStatusCompleted = "completed" // Hoàn tất
	SyncJobStatusFailed    = "failed"    // Thất bại
)

// Target hợp lệ khi trigger sync
const (
	SyncTargetMovies  = "movies"  // Daily sync phim lẻ
	SyncTargetTV      = "tv"      // Daily sync phim bộ
	SyncTargetAll     = "all"     // Daily sync cả hai + trending + cleanup
	SyncTargetToday   = "today"   // Daily sync với export mới nhất (alias của all)
	SyncTargetPopular = "popular" // Chỉ sync popular + trending
)

// SyncJobParams là tham số tùy chọn khi trigger sync thủ công
type SyncJobParams struct {
	Date           string `json:"date,omitempty" bson:"date,omitempty"`                     // Ngày export chỉ định (YYYY-MM-DD), rỗng = tự tìm
	BatchSize      int    `json:"batchSize,omitempty" bson:"batchSize,omitempty"`           // Override kích thước batch
	StartFromBatch int    `json:"startFromBatch,omitempty" bson:"startFromBatch,omitempty"` // Resume từ batch thứ k (đánh số từ 0)
}

// SyncJob lưu trạng thái một lần chạy đồng bộ catalog.
type SyncJob struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Target string        `json:"target" bson:"target"`
	Params SyncJobParams `json:"params" bson:"params"`
	Status string        `json:"status" bson:"status"`

	Processed int64  `json:"processed" bson:"processed"` // Tổng số item đã xử lý
	Synced    int64  `json:"synced" bson:"synced"`       // Số item đồng bộ thành công
	Failed    int64  `json:"failed" bson:"failed"`       // Số item thất bại (được đếm, không dừng run)
	Error     string `json:"error,omitempty" bson:"error,omitempty"`

	StartedAt  int64 `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	FinishedAt int64 `json:"finishedAt,omitempty" bson:"finishedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
