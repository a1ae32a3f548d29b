package handler

import (
	"job-scout/internal/delivery/http/dto"
	"job-scout/internal/delivery/http/middleware"
	"job-scout/internal/pkg/response"
	"job-scout/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationsHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationsHandler(uc usecase.ApplicationUsecase) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc}
}

func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Patch("/:id/status", h.HandleUpdateStatus)
}

type createApplicationRequest struct {
	JobID   *uuid.UUID `json:"jobId"`
	Title   string     `json:"title"`
	Company string     `json:"company"`
	JobURL  string     `json:"jobUrl"`
	Notes   string     `json:"notes"`
	RawText string     `json:"rawText"`
}

func (h *ApplicationsHandler) HandleCreate(c fiber.Ctx) error {
	var req createApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.Create(c.Context(), usecase.ApplicationCreateParams{
		JobID:   req.JobID,
		Title:   req.Title,
		Company: req.Company,
		JobURL:  req.JobURL,
		Notes:   req.Notes,
		RawText: req.RawText,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "created", dto.FromApplication(a))
}

func (h *ApplicationsHandler) HandleList(c fiber.Ctx) error {
	limit, err := parseIntQuery(c, "limit", 50)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, dto.FromApplication(a))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationsHandler) HandleUpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(a))
}
