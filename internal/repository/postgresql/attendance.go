package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.UserIDs != nil {
		if len(filter.UserIDs) == 0 {
			return nil, nil
		}
		conditions = append(conditions, fmt.Sprintf("a.user_id = ANY($%d::uuid[])", argIdx))
		args = append(args, filter.UserIDs)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, calendar.Day(*filter.StartDate))
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, calendar.Day(*filter.EndDate))
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, string(*filter.Status))
	}

	query := `
		SELECT a.id, a.user_id, a.date, a.status, a.notes, a.created_at, a.updated_at, u.name
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.date ASC, u.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Date,
			&rec.Status,
			&rec.Notes,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.UserName,
		); err != nil {
			return nil, err
		}
		rec.Date = calendar.Day(rec.Date)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Upsert implements attendance.AttendanceRepository. The last write for a
// (user_id, date) pair wins.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return attendance.Record{}, err
	}

	query := `
		INSERT INTO attendance_records (id, user_id, date, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE
		SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, user_id, date, status, notes, created_at, updated_at
	`

	var saved attendance.Record
	err = q.QueryRow(ctx, query,
		id,
		record.UserID,
		calendar.Day(record.Date),
		string(record.Status),
		record.Notes,
	).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.Date,
		&saved.Status,
		&saved.Notes,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	saved.Date = calendar.Day(saved.Date)
	return saved, nil
}
