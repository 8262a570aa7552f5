package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pustaka-market/internal/domain"
)

type PurchaseRequestRepository interface {
	Create(ctx context.Context, req *domain.PurchaseRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseRequest, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.PurchaseRequest, error)
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.PurchaseRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, notes *string, expectedVersion int64) (*domain.PurchaseRequest, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
	SumAmountByStatus(ctx context.Context, status domain.RequestStatus) (float64, error)
	AvgDecisionSeconds(ctx context.Context) (*float64, error)
	ListByStatuses(ctx context.Context, statuses []domain.RequestStatus) ([]domain.PurchaseRequest, error)
}

type purchaseRequestRepository struct {
	db *sqlx.DB
}

func NewPurchaseRequestRepository(db *sqlx.DB) PurchaseRequestRepository {
	return &purchaseRequestRepository{db: db}
}

func (r *purchaseRequestRepository) Create(ctx context.Context, req *domain.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests
			(id, user_id, item_type, item_id, item_title, amount, status,
			 preferred_contact_method, contact_detail, user_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING version, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.UserID, req.ItemType, req.ItemID, req.ItemTitle, req.Amount,
		req.Status, req.PreferredContactMethod, req.ContactDetail, req.UserMessage,
	).Scan(&req.Version, &req.CreatedAt, &req.UpdatedAt)
}

func (r *purchaseRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseRequest, error) {
	var req domain.PurchaseRequest
	query := `SELECT * FROM purchase_requests WHERE id = $1`
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *purchaseRequestRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.PurchaseRequest, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var requests []domain.PurchaseRequest
	query := `SELECT * FROM purchase_requests WHERE id = ANY($1) ORDER BY created_at`
	err := r.db.SelectContext(ctx, &requests, query, pq.Array(raw))
	return requests, err
}

func (r *purchaseRequestRepository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.PurchaseRequest, int64, error) {
	filter.Validate()

	clauses := []string{}
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM purchase_requests`+where, args...); err != nil {
		return nil, 0, err
	}

	limitPos := len(args) + 1
	query := fmt.Sprintf(`SELECT * FROM purchase_requests%s
		ORDER BY created_at ASC
		LIMIT $%d OFFSET $%d`, where, limitPos, limitPos+1)
	args = append(args, filter.PageSize, filter.Offset())

	var requests []domain.PurchaseRequest
	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, total, err
}

// UpdateStatus applies a transition only when the stored version still
// matches expectedVersion. contacted_at is stamped on first entry to
// contacted; responded_at on first exit from pending. Both CASE arms read
// the pre-update row, so repeat transitions never overwrite them.
func (r *purchaseRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, notes *string, expectedVersion int64) (*domain.PurchaseRequest, error) {
	query := `
		UPDATE purchase_requests
		SET status = $2,
			admin_notes = COALESCE($3, admin_notes),
			contacted_at = CASE WHEN $2 = 'contacted' AND contacted_at IS NULL THEN NOW() ELSE contacted_at END,
			responded_at = CASE WHEN status = 'pending' AND responded_at IS NULL THEN NOW() ELSE responded_at END,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $4
		RETURNING *`

	var updated domain.PurchaseRequest
	err := r.db.QueryRowxContext(ctx, query, id, status, notes, expectedVersion).StructScan(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// No row matched: either the id is unknown or the version went stale.
	var exists bool
	if checkErr := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM purchase_requests WHERE id = $1)`, id); checkErr != nil {
		return nil, checkErr
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrConflict
}

func (r *purchaseRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	rows := []struct {
		Status domain.RequestStatus `db:"status"`
		Count  int64                `db:"count"`
	}{}

	query := `SELECT status, COUNT(*) AS count FROM purchase_requests GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[domain.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *purchaseRequestRepository) SumAmountByStatus(ctx context.Context, status domain.RequestStatus) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM purchase_requests WHERE status = $1`
	err := r.db.GetContext(ctx, &total, query, status)
	return total, err
}

// AvgDecisionSeconds measures the mean time from creation to leaving
// pending, over requests that have been responded to.
func (r *purchaseRequestRepository) AvgDecisionSeconds(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	query := `
		SELECT AVG(EXTRACT(EPOCH FROM (responded_at - created_at)))
		FROM purchase_requests
		WHERE responded_at IS NOT NULL`
	if err := r.db.GetContext(ctx, &avg, query); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (r *purchaseRequestRepository) ListByStatuses(ctx context.Context, statuses []domain.RequestStatus) ([]domain.PurchaseRequest, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}

	var requests []domain.PurchaseRequest
	query := `SELECT * FROM purchase_requests WHERE status = ANY($1) ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &requests, query, pq.Array(raw))
	return requests, err
}
