package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"

	"pustaka-market/internal/config"
	"pustaka-market/internal/domain"
	"pustaka-market/internal/repository"
)

// Service snapshots finalized requests as CSV into object storage, where
// the external analytics pipeline picks them up.
type Service interface {
	ExportFinalizedCSV(ctx context.Context) (string, error)
}

type service struct {
	repo        repository.PurchaseRequestRepository
	minioClient *minio.Client
	config      *config.Config
}

func NewService(repo repository.PurchaseRequestRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{repo: repo, minioClient: minioClient, config: cfg}
}

func (s *service) ExportFinalizedCSV(ctx context.Context) (string, error) {
	if s.minioClient == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	requests, err := s.repo.ListByStatuses(ctx, []domain.RequestStatus{
		domain.StatusRejected,
		domain.StatusCompleted,
	})
	if err != nil {
		return "", fmt.Errorf("fetch finalized requests: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"id", "user_id", "item_type", "item_id", "item_title", "amount",
		"status", "contacted_at", "responded_at", "created_at", "updated_at",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range requests {
		req := &requests[i]
		record := []string{
			req.ID.String(),
			req.UserID.String(),
			string(req.ItemType),
			req.ItemID.String(),
			req.ItemTitle,
			strconv.FormatFloat(req.Amount, 'f', 2, 64),
			string(req.Status),
			formatTime(req.ContactedAt),
			formatTime(req.RespondedAt),
			req.CreatedAt.Format(time.RFC3339),
			req.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("exports/requests-%s.csv", time.Now().UTC().Format("20060102-150405"))
	_, err = s.minioClient.PutObject(ctx, s.config.MinIOBucket, objectName,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}

	return objectName, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
