package handler

import (
	"errors"
	"strconv"
	"time"

	"job-scout/internal/delivery/http/dto"
	"job-scout/internal/delivery/http/middleware"
	"job-scout/internal/pkg/response"
	"job-scout/internal/search"
	"job-scout/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SearchHandler struct {
	uc usecase.SearchUsecase
}

func NewSearchHandler(uc usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/search", h.HandleSearch)
}

// HandleSearch serves one search page, then runs the page-local client
// filter pass over it. The second pass can shrink a page below pageSize;
// that is the intended trade-off for instant filtering, so stats are
// recomputed from the filtered rows.
func (h *SearchHandler) HandleSearch(c fiber.Ctx) error {
	params := usecase.SearchParams{
		Keywords:        c.Query("keywords"),
		Location:        c.Query("location"),
		DatePosted:      c.Query("datePosted"),
		ExperienceLevel: c.Query("experienceLevel"),
		Remote:          parseBoolQuery(c, "remote"),
		EasyApply:       parseBoolQuery(c, "easyApply"),
	}
	if v := parseBoolQuery(c, "forceRefresh"); v != nil {
		params.ForceRefresh = *v
	}

	var err error
	if params.Page, err = parseIntQuery(c, "page", 1); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if params.PageSize, err = parseIntQuery(c, "pageSize", 0); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.Search(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}

	now := time.Now()
	filtered := search.ApplyClientFilters(result.Jobs, search.ClientFilter{
		WorkType:        c.Query("workType"),
		ExperienceLevel: params.ExperienceLevel,
		DatePosted:      params.DatePosted,
		EasyApply:       params.EasyApply,
	}, now)

	jobs := make([]map[string]any, 0, len(filtered))
	for _, j := range filtered {
		jobs = append(jobs, dto.JobPayload(j))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SearchResponse{
		Jobs:           jobs,
		TotalCount:     result.TotalCount,
		Page:           result.Page,
		PageSize:       result.PageSize,
		TotalPages:     result.TotalPages,
		HasMoreResults: result.HasMoreResults,
		FromCache:      result.FromCache,
		Stats:          search.ComputeStats(filtered, now),
	})
}

func parseIntQuery(c fiber.Ctx, key string, def int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func parseBoolQuery(c fiber.Ctx, key string) *bool {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid status transition", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
