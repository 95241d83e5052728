package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/delegation"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const delegationSelect = `
	SELECT d.id, d.delegator_id, d.delegate_id, d.start_date, d.end_date,
		d.is_active, d.revoked_at, d.created_at, d.updated_at,
		dr.name, de.name
	FROM delegations d
	LEFT JOIN users dr ON dr.id = d.delegator_id
	LEFT JOIN users de ON de.id = d.delegate_id`

type delegationRepositoryImpl struct {
	db *database.DB
}

func NewDelegationRepository(db *database.DB) delegation.DelegationRepository {
	return &delegationRepositoryImpl{db: db}
}

func scanDelegation(row pgx.Row) (delegation.Delegation, error) {
	var d delegation.Delegation
	err := row.Scan(
		&d.ID,
		&d.DelegatorID,
		&d.DelegateID,
		&d.StartDate,
		&d.EndDate,
		&d.IsActive,
		&d.RevokedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DelegatorName,
		&d.DelegateName,
	)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return delegation.Delegation{}, delegation.ErrDelegationNotFound
	}
	d.StartDate, d.EndDate = calendar.Day(d.StartDate), calendar.Day(d.EndDate)
	return d, err
}

func (r *delegationRepositoryImpl) query(ctx context.Context, sql string, args ...interface{}) ([]delegation.Delegation, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []delegation.Delegation
	for rows.Next() {
		d, err := scanDelegation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// List implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) List(ctx context.Context) ([]delegation.Delegation, error) {
	return r.query(ctx, delegationSelect+" ORDER BY d.created_at DESC")
}

// ListByDelegate implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) ListByDelegate(ctx context.Context, delegateID string) ([]delegation.Delegation, error) {
	return r.query(ctx, delegationSelect+" WHERE d.delegate_id = $1 ORDER BY d.created_at DESC", delegateID)
}

// GetByID implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) GetByID(ctx context.Context, id string) (delegation.Delegation, error) {
	if !isUUID(id) {
		return delegation.Delegation{}, delegation.ErrDelegationNotFound
	}
	q := GetQuerier(ctx, r.db)
	return scanDelegation(q.QueryRow(ctx, delegationSelect+" WHERE d.id = $1", id))
}

// Create implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) Create(ctx context.Context, d delegation.Delegation) (delegation.Delegation, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return delegation.Delegation{}, err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO delegations (id, delegator_id, delegate_id, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, d.DelegatorID, d.DelegateID, calendar.Day(d.StartDate), calendar.Day(d.EndDate), d.IsActive)
	if err != nil {
		return delegation.Delegation{}, err
	}
	return r.GetByID(ctx, id)
}

// Deactivate implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) Deactivate(ctx context.Context, id string) (delegation.Delegation, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE delegations
		SET is_active = false, revoked_at = COALESCE(revoked_at, NOW()), updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return delegation.Delegation{}, err
	}
	if tag.RowsAffected() == 0 {
		return delegation.Delegation{}, delegation.ErrDelegationNotFound
	}
	return r.GetByID(ctx, id)
}

// DeactivateExpired implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) DeactivateExpired(ctx context.Context, asOf time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE delegations
		SET is_active = false, updated_at = NOW()
		WHERE is_active AND end_date < $1
	`, calendar.Day(asOf))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
