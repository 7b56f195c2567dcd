package handler

import (
	"errors"
	"strconv"

	"jobpost/internal/delivery/http/dto"
	"jobpost/internal/delivery/http/middleware"
	"jobpost/internal/delivery/http/validation"
	"jobpost/internal/domain/job"
	"jobpost/internal/pkg/response"
	"jobpost/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc       usecase.JobUsecase
	validate *validation.Validator
}

func NewJobsHandler(uc usecase.JobUsecase, validate *validation.Validator) *JobsHandler {
	if validate == nil {
		validate = validation.New()
	}
	return &JobsHandler{uc: uc, validate: validate}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", h.Delete)
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Malformed request body", nil, err)
	}

	if err := h.validate.Struct(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, verr.Fields, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	created, err := h.uc.Create(c.Context(), req.ToInput())
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewJobResponse(created))
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	items, err := h.uc.FindAll(c.Context())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewJobListResponse(items))
}

// Get answers 200 with a JSON null body when the job does not exist.
func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return err
	}

	j, ok, err := h.uc.FindOne(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	if !ok {
		return c.Status(fiber.StatusOK).JSON(nil)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewJobResponse(j))
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), id); err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

func parseJobID(c fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", fiber.Map{"id": raw}, err)
	}
	return id, nil
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, job.ErrInvalidDate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application deadline", fiber.Map{"applicationDeadline": "date"}, err)
	case errors.Is(err, job.ErrInvalidType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job type", fiber.Map{"jobType": "jobtype"}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
