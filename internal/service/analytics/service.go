package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/repository"
)

const (
	statsCacheKey = "analytics:stats"
	statsCacheTTL = 5 * time.Minute
)

// Stats is the read-only view the analytics consumers work from. It is
// computed from finalized and in-flight request rows; nothing here writes.
type Stats struct {
	TotalRequests      int64    `json:"total_requests"`
	PendingRequests    int64    `json:"pending_requests"`
	ContactedRequests  int64    `json:"contacted_requests"`
	ApprovedRequests   int64    `json:"approved_requests"`
	RejectedRequests   int64    `json:"rejected_requests"`
	CompletedRequests  int64    `json:"completed_requests"`
	ConversionRate     float64  `json:"conversion_rate"`
	CompletedRevenue   float64  `json:"completed_revenue"`
	PendingValue       float64  `json:"pending_value"`
	AvgDecisionSeconds *float64 `json:"avg_decision_seconds,omitempty"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
	Invalidate(ctx context.Context)
}

type service struct {
	repo  repository.PurchaseRequestRepository
	redis *redis.Client
}

func NewService(repo repository.PurchaseRequestRepository, redisClient *redis.Client) Service {
	return &service{repo: repo, redis: redisClient}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	completedRevenue, err := s.repo.SumAmountByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	pendingValue, err := s.repo.SumAmountByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}

	avgDecision, err := s.repo.AvgDecisionSeconds(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		PendingRequests:    counts[domain.StatusPending],
		ContactedRequests:  counts[domain.StatusContacted],
		ApprovedRequests:   counts[domain.StatusApproved],
		RejectedRequests:   counts[domain.StatusRejected],
		CompletedRequests:  counts[domain.StatusCompleted],
		CompletedRevenue:   completedRevenue,
		PendingValue:       pendingValue,
		AvgDecisionSeconds: avgDecision,
	}
	for _, count := range counts {
		stats.TotalRequests += count
	}
	if stats.TotalRequests > 0 {
		stats.ConversionRate = float64(stats.CompletedRequests) / float64(stats.TotalRequests)
	}

	if s.redis != nil {
		if raw, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err()
		}
	}

	return stats, nil
}

// Invalidate drops the cached aggregates. Called when a request reaches a
// terminal status so the dashboard does not serve stale conversion numbers
// for the full TTL.
func (s *service) Invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, statsCacheKey).Err()
}
