// Package catalogsvc - Service bản dịch nội dung (translations).
package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	basesvc "movie_backend/internal/api/base/service"
	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/common"
	"movie_backend/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/language"
)

// TranslationService xử lý bản dịch title/overview theo ngôn ngữ.
type TranslationService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.ContentTranslation]
}

// NewTranslationService tạo TranslationService mới.
func NewTranslationService() (*TranslationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Translations)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Translations, common.ErrNotFound)
	}
	return &TranslationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.ContentTranslation](coll),
	}, nil
}

// CanonicalizeLanguage chuẩn hóa tag ngôn ngữ về dạng BCP 47 chuẩn ("vi-vn" → "vi-VN").
func CanonicalizeLanguage(tag string) (string, error) {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Tag ngôn ngữ không hợp lệ: %s", tag), common.StatusBadRequest, nil)
	}
	return parsed.String(), nil
}

// FallbackCandidates trả về danh sách tag để tra cứu theo thứ tự ưu tiên:
// tag đầy đủ trước, rồi đến ngôn ngữ gốc ("vi-VN" → ["vi-VN", "vi"]).
func FallbackCandidates(tag string) ([]string, error) {
	canonical, err := CanonicalizeLanguage(tag)
	if err != nil {
		return nil, err
	}

	candidates := []string{canonical}
	parsed := language.Make(canonical)
	base, _ := parsed.Base()
	if base.String() != canonical {
		candidates = append(candidates, base.String())
	}
	return candidates, nil
}

// UpsertTranslation ghi bản dịch theo bộ ba (tmdbId, mediaType, language).
// Language được chuẩn hóa trước khi ghi.
func (s *TranslationService) UpsertTranslation(ctx context.Context, t catalogmodels.ContentTranslation) (catalogmodels.ContentTranslation, error) {
	canonical, err := CanonicalizeLanguage(t.Language)
	if err != nil {
		return catalogmodels.ContentTranslation{}, err
	}
	t.Language = canonical

	filter := bson.M{
		"tmdbId":    t.TmdbID,
		"mediaType": t.MediaType,
		"language":  canonical,
	}
	return s.Upsert(ctx, filter, t)
}

// Lookup tra cứu bản dịch với fallback: thử tag đầy đủ trước, rồi đến ngôn ngữ gốc.
// Không có bản dịch nào → common.ErrNotFound.
func (s *TranslationService) Lookup(ctx context.Context, tmdbID int64, mediaType, tag string) (catalogmodels.ContentTranslation, error) {
	candidates, err := FallbackCandidates(tag)
	if err != nil {
		return catalogmodels.ContentTranslation{}, err
	}

	for _, candidate := range candidates {
		filter := bson.M{
			"tmdbId":    tmdbID,
			"mediaType": mediaType,
			"language":  candidate,
		}
		result, err := s.FindOne(ctx, filter, nil)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return catalogmodels.ContentTranslation{}, err
		}
	}
	return catalogmodels.ContentTranslation{}, common.ErrNotFound
}
