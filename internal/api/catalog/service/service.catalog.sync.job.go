// Package catalogsvc - Service theo dõi tiến trình đồng bộ (sync_jobs).
package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "movie_backend/internal/api/base/service"
	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/common"
	"movie_backend/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// SyncJobService xử lý vòng đời của các sync job.
type SyncJobService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.SyncJob]
}

// NewSyncJobService tạo SyncJobService mới.
func NewSyncJobService() (*SyncJobService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SyncJobs)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.SyncJobs, common.ErrNotFound)
	}
	return &SyncJobService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.SyncJob](coll),
	}, nil
}

// CreateQueued tạo job mới ở trạng thái queued và trả về ngay.
func (s *SyncJobService) CreateQueued(ctx context.Context, target string, params catalogmodels.SyncJobParams) (catalogmodels.SyncJob, error) {
	job := catalogmodels.SyncJob{
		Target: target,
		Params: params,
		Status: catalogmodels.SyncJobStatusQueued,
	}
	return s.InsertOne(ctx, job)
}

// MarkRunning chuyển job sang trạng thái running.
func (s *SyncJobService) MarkRunning(ctx context.Context, jobID primitive.ObjectID) error {
	now := time.Now().UnixMilli()
	update := bson.M{"$set": bson.M{
		"status":    catalogmodels.SyncJobStatusRunning,
		"startedAt": now,
		"updatedAt": now,
	}}
	_, err := s.UpdateOne(ctx, bson.M{"_id": jobID}, update, nil)
	return err
}

// UpdateProgress cập nhật các bộ đếm của job đang chạy.
func (s *SyncJobService) UpdateProgress(ctx context.Context, jobID primitive.ObjectID, processed, synced, failed int64) error {
	update := bson.M{"$set": bson.M{
		"processed": processed,
		"synced":    synced,
		"failed":    failed,
		"updatedAt": time.Now().UnixMilli(),
	}}
	_, err := s.UpdateOne(ctx, bson.M{"_id": jobID}, update, nil)
	return err
}

// MarkCompleted chuyển job sang completed kèm bộ đếm cuối cùng.
func (s *SyncJobService) MarkCompleted(ctx context.Context, jobID primitive.ObjectID, processed, synced, failed int64) error {
	now := time.Now().UnixMilli()
	update := bson.M{"$set": bson.M{
		"status":     catalogmodels.SyncJobStatusCompleted,
		"processed":  processed,
		"synced":     synced,
		"failed":     failed,
		"finishedAt": now,
		"updatedAt":  now,
	}}
	_, err := s.UpdateOne(ctx, bson.M{"_id": jobID}, update, nil)
	return err
}

// MarkFailed chuyển job sang failed kèm thông báo lỗi.
func (s *SyncJobService) MarkFailed(ctx context.Context, jobID primitive.ObjectID, runErr error) error {
	now := time.Now().UnixMilli()
	message := ""
	if runErr != nil {
		message = runErr.Error()
	}
	update := bson.M{"$set": bson.M{
		"status":     catalogmodels.SyncJobStatusFailed,
		"error":      message,
		"finishedAt": now,
		"updatedAt":  now,
	}}
	_, err := s.UpdateOne(ctx, bson.M{"_id": jobID}, update, nil)
	return err
}

// GetByID trả về job theo id; không tồn tại → common.ErrSyncJobNotFound.
func (s *SyncJobService) GetByID(ctx context.Context, jobID primitive.ObjectID) (catalogmodels.SyncJob, error) {
	job, err := s.FindOneById(ctx, jobID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return catalogmodels.SyncJob{}, common.ErrSyncJobNotFound
		}
		return catalogmodels.SyncJob{}, err
	}
	return job, nil
}

// ListRecent trả về các job gần nhất, mới trước.
func (s *SyncJobService) ListRecent(ctx context.Context, limit int64) ([]catalogmodels.SyncJob, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return s.Find(ctx, bson.M{}, opts)
}
