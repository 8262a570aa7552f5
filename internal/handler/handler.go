package handler

import (
	"github.com/gofiber/fiber/v2"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/service"
)

type Handlers struct {
	Request      *RequestHandler
	Contact      *ContactHandler
	Analytics    *AnalyticsHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Request:      NewRequestHandler(services.Request, services.Approval),
		Contact:      NewContactHandler(services.Request, services.Contact),
		Analytics:    NewAnalyticsHandler(services.Analytics),
		Notification: NewNotificationHandler(services.Notification),
		Export:       NewExportHandler(services.Export),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	params.Validate()
	return params
}
