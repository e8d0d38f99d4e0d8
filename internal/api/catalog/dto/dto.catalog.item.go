// Package dto - DTO cho domain catalog (danh sách, tìm kiếm, trending, translation).
package dto

// CatalogListQuery là tham số lọc danh sách catalog công khai.
type CatalogListQuery struct {
	Page     int    `json:"page" validate:"omitempty,min=1"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Genre    int    `json:"genre" validate:"omitempty,min=1"`                  // Lọc theo genre id
	Language string `json:"language" validate:"omitempty,language_tag"`        // Lọc theo ngôn ngữ gốc
	Year     int    `json:"year" validate:"omitempty,min=1870,max=2100"`       // Lọc theo năm phát hành
	Sort     string `json:"sort" validate:"omitempty,oneof=popularity recent"` // Thứ tự: popularity (mặc định) hoặc recent
}

// CatalogSearchQuery là tham số tìm kiếm full-text.
type CatalogSearchQuery struct {
	Query string `json:"q" validate:"required,min=1,max=200,no_xss"`
	Page  int    `json:"page" validate:"omitempty,min=1"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// TrendingHideInput dữ liệu ẩn một entry trending.
type TrendingHideInput struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500,no_xss"`
}
