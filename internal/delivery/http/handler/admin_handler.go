package handler

import (
	"job-scout/internal/pkg/response"
	"job-scout/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	cleanup usecase.CleanupUsecase
}

func NewAdminHandler(cleanup usecase.CleanupUsecase) *AdminHandler {
	return &AdminHandler{cleanup: cleanup}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/cleanup", h.HandleCleanup)
}

func (h *AdminHandler) HandleCleanup(c fiber.Ctx) error {
	deleted, err := h.cleanup.CleanupExpired(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"deleted": deleted})
}
