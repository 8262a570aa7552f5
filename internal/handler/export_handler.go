package handler

import (
	"github.com/gofiber/fiber/v2"

	"pustaka-market/internal/service/export"
)

type ExportHandler struct {
	exportService export.Service
}

func NewExportHandler(exportService export.Service) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) ExportFinalized(c *fiber.Ctx) error {
	objectName, err := h.exportService.ExportFinalizedCSV(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"object": objectName})
}
