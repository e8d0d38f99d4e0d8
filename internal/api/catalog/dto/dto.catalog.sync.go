// Package dto - DTO cho domain catalog (sync trigger, sync settings).
package dto

// SyncTriggerInput dữ liệu trigger đồng bộ thủ công.
type SyncTriggerInput struct {
	Target         string `json:"target" validate:"required,oneof=movies tv all today popular"`
	Date           string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"` // Ngày export chỉ định, rỗng = tự tìm
	BatchSize      int    `json:"batchSize,omitempty" validate:"omitempty,min=1,max=1000"`
	StartFromBatch int    `json:"startFromBatch,omitempty" validate:"omitempty,min=0"`
}

// SyncTriggerResponse trả về ngay sau khi job được nhận.
type SyncTriggerResponse struct {
	JobID  string `json:"jobId"`
	Target string `json:"target"`
	Status string `json:"status"` // Luôn là queued tại thời điểm trả về
}

// SyncSettingsUpdateInput dữ liệu cập nhật cấu hình đồng bộ.
// Pointer để phân biệt "không gửi" với "gửi 0" (0 = bỏ qua sync, -1 = không giới hạn).
type SyncSettingsUpdateInput struct {
	MovieCatalogLimit    *int64 `json:"movieCatalogLimit,omitempty" validate:"omitempty,min=-1"`
	TVCatalogLimit       *int64 `json:"tvCatalogLimit,omitempty" validate:"omitempty,min=-1"`
	TrendingCatalogLimit *int64 `json:"trendingCatalogLimit,omitempty" validate:"omitempty,min=-1"`
}
