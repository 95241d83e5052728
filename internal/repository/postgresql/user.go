package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, role, chapter_lead_id, team_name, avatar,
		password_hash, is_first_login, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.ChapterLeadID,
		&u.TeamName,
		&u.Avatar,
		&u.PasswordHash,
		&u.IsFirstLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return user.User{}, user.ErrUserNotFound
	}
	return u, err
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, string(*filter.Role))
		argIdx++
	}
	if filter.ChapterLeadID != nil {
		conditions = append(conditions, fmt.Sprintf("chapter_lead_id = $%d", argIdx))
		args = append(args, *filter.ChapterLeadID)
	}

	query := "SELECT " + userColumns + " FROM users"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	if !isUUID(id) {
		return user.User{}, user.ErrUserNotFound
	}
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return user.User{}, err
	}

	query := `
		INSERT INTO users (id, email, name, role, chapter_lead_id, team_name, avatar, password_hash, is_first_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		id,
		newUser.Email,
		newUser.Name,
		string(newUser.Role),
		newUser.ChapterLeadID,
		newUser.TeamName,
		newUser.Avatar,
		newUser.PasswordHash,
		newUser.IsFirstLogin,
	))
	if isUniqueViolation(err) {
		return user.User{}, user.ErrUserEmailExists
	}
	return created, err
}

// Update implements user.UserRepository. The password hash is not touched.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email = $1, name = $2, role = $3, chapter_lead_id = $4,
			team_name = $5, avatar = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, query,
		u.Email,
		u.Name,
		string(u.Role),
		u.ChapterLeadID,
		u.TeamName,
		u.Avatar,
		u.ID,
	))
	if isUniqueViolation(err) {
		return user.User{}, user.ErrUserEmailExists
	}
	return updated, err
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// CountByRole implements user.UserRepository.
func (r *userRepositoryImpl) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	q := GetQuerier(ctx, r.db)
	var n int64
	err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE role = $1", string(role)).Scan(&n)
	return n, err
}

// CountReporters implements user.UserRepository.
func (r *userRepositoryImpl) CountReporters(ctx context.Context, chapterLeadID string) (int64, error) {
	q := GetQuerier(ctx, r.db)
	var n int64
	err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE chapter_lead_id = $1 AND role = 'REPORTER'", chapterLeadID).Scan(&n)
	return n, err
}

// CompleteFirstLogin implements user.UserRepository.
func (r *userRepositoryImpl) CompleteFirstLogin(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, "UPDATE users SET is_first_login = false, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
