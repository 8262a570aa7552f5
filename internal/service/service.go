package service

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"pustaka-market/internal/config"
	"pustaka-market/internal/events"
	"pustaka-market/internal/repository"
	"pustaka-market/internal/service/analytics"
	"pustaka-market/internal/service/approval"
	"pustaka-market/internal/service/contact"
	"pustaka-market/internal/service/export"
	"pustaka-market/internal/service/notification"
	"pustaka-market/internal/service/request"
)

type Services struct {
	Request      request.Service
	Approval     approval.Service
	Contact      contact.Service
	Analytics    analytics.Service
	Notification notification.Service
	Export       export.Service
}

func NewServices(repos *repository.Repositories, bus *events.EventBus, redisClient *redis.Client, minioClient *minio.Client, logger zerolog.Logger, cfg *config.Config) *Services {
	requestService := request.NewService(repos.PurchaseRequest, bus)
	approvalService := approval.NewService(repos.PurchaseRequest, bus, logger, cfg.BulkConcurrency, cfg.StoreTimeout)
	contactService := contact.NewService(cfg)
	analyticsService := analytics.NewService(repos.PurchaseRequest, redisClient)
	notificationService := notification.NewService(repos.Notification, contactService, logger)
	exportService := export.NewService(repos.PurchaseRequest, minioClient, cfg)

	notificationService.RegisterSubscribers(bus)

	// A finalized request shifts conversion numbers; drop the cached
	// aggregates instead of serving them for the rest of the TTL.
	invalidateStats := func(*events.Event) error {
		analyticsService.Invalidate(context.Background())
		return nil
	}
	for _, eventType := range []string{
		events.EventRequestRejected,
		events.EventRequestCompleted,
	} {
		bus.Subscribe(eventType, invalidateStats)
	}

	return &Services{
		Request:      requestService,
		Approval:     approvalService,
		Contact:      contactService,
		Analytics:    analyticsService,
		Notification: notificationService,
		Export:       exportService,
	}
}
