package tmdb

// MediaKind phân biệt loại nội dung trên TMDB (movie hoặc tv)
type MediaKind string

const (
	KindMovie MediaKind = "movie" // Phim lẻ
	KindTV    MediaKind = "tv"    // Phim bộ
)

// MaxPages là số page tối đa TMDB cho phép truy vấn trên các endpoint phân trang.
// Request page > 500 sẽ bị TMDB trả về lỗi 400.
const MaxPages = 500

// PageSize là số item mỗi page của các endpoint danh sách TMDB (cố định, không cấu hình được)
const PageSize = 20

// ListItem là một item trong response danh sách của TMDB (popular, trending).
// Movie dùng title/original_title/release_date, TV dùng name/original_name/first_air_date,
// nên struct gộp cả hai bộ field và cung cấp accessor thống nhất.
type ListItem struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalTitle    string  `json:"original_title"`
	OriginalName     string  `json:"original_name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`
	MediaType        string  `json:"media_type"` // Chỉ có trong response trending
}

// DisplayTitle trả về tên hiển thị, ưu tiên title (movie) rồi đến name (tv)
func (i ListItem) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// DisplayOriginalTitle trả về tên gốc, ưu tiên original_title (movie) rồi đến original_name (tv)
func (i ListItem) DisplayOriginalTitle() string {
	if i.OriginalTitle != "" {
		return i.OriginalTitle
	}
	return i.OriginalName
}

// DisplayReleaseDate trả về ngày phát hành, ưu tiên release_date (movie) rồi đến first_air_date (tv)
func (i ListItem) DisplayReleaseDate() string {
	if i.ReleaseDate != "" {
		return i.ReleaseDate
	}
	return i.FirstAirDate
}

// ListPage là một page kết quả của endpoint danh sách TMDB
type ListPage struct {
	Page         int        `json:"page"`
	Results      []ListItem `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int64      `json:"total_results"`
}

// Genre là một thể loại trong response chi tiết của TMDB
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Detail là response chi tiết của một item TMDB.
// Khác với ListItem, endpoint chi tiết trả về genres đầy đủ thay vì genre_ids.
type Detail struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalTitle    string  `json:"original_title"`
	OriginalName     string  `json:"original_name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Genres           []Genre `json:"genres"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`
}

// GenreIDs trích danh sách id thể loại từ genres
func (d Detail) GenreIDs() []int {
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// DisplayTitle trả về tên hiển thị, ưu tiên title (movie) rồi đến name (tv)
func (d Detail) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// DisplayOriginalTitle trả về tên gốc, ưu tiên original_title (movie) rồi đến original_name (tv)
func (d Detail) DisplayOriginalTitle() string {
	if d.OriginalTitle != "" {
		return d.OriginalTitle
	}
	return d.OriginalName
}

// DisplayReleaseDate trả về ngày phát hành, ưu tiên release_date (movie) rồi đến first_air_date (tv)
func (d Detail) DisplayReleaseDate() string {
	if d.ReleaseDate != "" {
		return d.ReleaseDate
	}
	return d.FirstAirDate
}

// TranslationData là nội dung đã dịch của một item theo một ngôn ngữ
type TranslationData struct {
	Title    string // Tên đã dịch (title của movie hoặc name của tv)
	Overview string // Mô tả đã dịch
}

// translationResponse là response thô của endpoint /translations
type translationResponse struct {
	ID           int64 `json:"id"`
	Translations []struct {
		ISO6391  string `json:"iso_639_1"`
		ISO31661 string `json:"iso_3166_1"`
		Data     struct {
			Title    string `json:"title"`
			Name     string `json:"name"`
			Overview string `json:"overview"`
		} `json:"data"`
	} `json:"translations"`
}

// ExportRecord là một dòng trong file export id hàng ngày của TMDB
type ExportRecord struct {
	ID            int64   `json:"id"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Popularity    float64 `json:"popularity"`
	Adult         bool    `json:"adult"`
	Video         bool    `json:"video"`
}
