// Package cataloghdl - Handler admin cho sync: trigger, job status, sync settings.
package cataloghdl

import (
	basehdl "movie_backend/internal/api/base/handler"
	catalogdto "movie_backend/internal/api/catalog/dto"
	catalogmodels "movie_backend/internal/api/catalog/models"
	catalogsvc "movie_backend/internal/api/catalog/service"
	"movie_backend/internal/common"
	syncengine "movie_backend/internal/sync"
	"movie_backend/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncHandler xử lý các endpoint admin của hệ thống đồng bộ.
type SyncHandler struct {
	*basehdl.BaseHandler[catalogmodels.SyncJob, catalogmodels.SyncJob, catalogmodels.SyncJob]
	Runner      *syncengine.Runner
	JobService  *catalogsvc.SyncJobService
	SettingsSvc *catalogsvc.SyncSettingsService
}

// NewSyncHandler tạo SyncHandler với runner đã được khởi tạo ở init.
func NewSyncHandler(runner *syncengine.Runner) (*SyncHandler, error) {
	jobSvc, err := catalogsvc.NewSyncJobService()
	if err != nil {
		return nil, err
	}
	settingsSvc, err := catalogsvc.NewSyncSettingsService()
	if err != nil {
		return nil, err
	}
	return &SyncHandler{
		BaseHandler: basehdl.NewBaseHandler[catalogmodels.SyncJob, catalogmodels.SyncJob, catalogmodels.SyncJob](jobSvc),
		Runner:      runner,
		JobService:  jobSvc,
		SettingsSvc: settingsSvc,
	}, nil
}

// HandleTrigger xử lý POST /sync/trigger: tạo job, chạy nền, trả về jobId ngay.
func (h *SyncHandler) HandleTrigger(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(catalogdto.SyncTriggerInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		params := catalogmodels.SyncJobParams{
			Date:           input.Date,
			BatchSize:      input.BatchSize,
			StartFromBatch: input.StartFromBatch,
		}
		job, err := h.Runner.Trigger(c.Context(), input.Target, params)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		response := catalogdto.SyncTriggerResponse{
			JobID:  utility.ObjectID2String(job.ID),
			Target: job.Target,
			Status: job.Status,
		}
		c.Status(common.StatusAccepted)
		h.HandleResponse(c, response, nil)
		return nil
	})
}

// HandleJobStatus xử lý GET /sync/jobs/:id để poll trạng thái job.
func (h *SyncHandler) HandleJobStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		jobID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Job id không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		job, err := h.JobService.GetByID(c.Context(), jobID)
		h.HandleResponse(c, job, err)
		return nil
	})
}

// HandleListJobs xử lý GET /sync/jobs, các job gần nhất trước.
func (h *SyncHandler) HandleListJobs(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		_, limit := h.ParsePagination(c)
		jobs, err := h.JobService.ListRecent(c.Context(), limit)
		h.HandleResponse(c, jobs, err)
		return nil
	})
}

// HandleGetSettings xử lý GET /sync/settings.
func (h *SyncHandler) HandleGetSettings(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		settings, err := h.SettingsSvc.GetOrCreate(c.Context())
		h.HandleResponse(c, settings, err)
		return nil
	})
}

// HandleUpdateSettings xử lý PUT /sync/settings.
// 0 = bỏ qua sync catalog đó, -1 = không giới hạn.
func (h *SyncHandler) HandleUpdateSettings(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(catalogdto.SyncSettingsUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		settings, err := h.SettingsSvc.ApplyUpdate(c.Context(), input)
		h.HandleResponse(c, settings, err)
		return nil
	})
}
