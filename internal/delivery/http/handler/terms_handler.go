package handler

import (
	"strings"

	"job-scout/internal/delivery/http/middleware"
	"job-scout/internal/infrastructure/extraction"
	"job-scout/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// TermsHandler exposes the model-backed term rewrite as a standalone
// endpoint. It is intentionally not part of the search path: search caching
// keys off the raw lowercased term.
type TermsHandler struct {
	extractor *extraction.Client
}

func NewTermsHandler(extractor *extraction.Client) *TermsHandler {
	return &TermsHandler{extractor: extractor}
}

func (h *TermsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/normalize", h.HandleNormalize)
}

type normalizeTermRequest struct {
	Query string `json:"query"`
}

func (h *TermsHandler) HandleNormalize(c fiber.Ctx) error {
	if h.extractor == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Extraction not configured", nil, nil)
	}

	var req normalizeTermRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.Query) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Empty query", nil, nil)
	}

	term, err := h.extractor.NormalizeTerm(c.Context(), req.Query)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadGateway, "Normalization failed", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"term": term})
}
