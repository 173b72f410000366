package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

const userColumns = `id, email, username, password_hash, role, avatar_id, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.Role, u.AvatarID, u.CreatedAt, u.UpdatedAt,
	)
	if constraint, ok := isUniqueViolation(err); ok {
		switch constraint {
		case "users_email_key":
			return domain.Conflict(domain.MsgEmailTaken)
		case "users_username_key":
			return domain.Conflict(domain.MsgUsernameTaken)
		}
		return domain.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.AvatarID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) findOne(ctx context.Context, column, value string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value))
	if err != nil {
		return nil, notFoundOr(err, "find user by "+column)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username", username)
}

func (r *UserRepository) SetAvatar(ctx context.Context, userID, avatarID string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET avatar_id = $2, updated_at = now() WHERE id = $1 RETURNING `+userColumns,
		userID, avatarID,
	))
	if isForeignKeyViolation(err) {
		return nil, domain.NotFound("Avatar not found")
	}
	if err != nil {
		return nil, notFoundOr(err, "set avatar")
	}
	return u, nil
}

func (r *UserRepository) AvatarURLs(ctx context.Context, userIDs []string) ([]domain.UserAvatar, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, a.image_url
		 FROM users u LEFT JOIN avatars a ON a.id = u.avatar_id
		 WHERE u.id = ANY($1)`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query user avatars: %w", err)
	}
	defer rows.Close()

	out := make([]domain.UserAvatar, 0, len(userIDs))
	for rows.Next() {
		var ua domain.UserAvatar
		if err := rows.Scan(&ua.UserID, &ua.ImageURL); err != nil {
			return nil, fmt.Errorf("scan user avatar: %w", err)
		}
		out = append(out, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user avatars: %w", err)
	}
	return out, nil
}
