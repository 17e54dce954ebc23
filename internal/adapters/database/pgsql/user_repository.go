package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_bank_api/internal/core/ports/repositories"
	"github.com/SscSPs/mini_bank_api/internal/models"
	"github.com/SscSPs/mini_bank_api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, password_hash, role, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`

	rows, err := r.Pool.Query(ctx, query, username)
	if err != nil {
		return nil, translateError(fmt.Sprintf("find user %q", username), err)
	}
	modelUser, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, translateError(fmt.Sprintf("find user %q", username), err)
	}
	user := mapping.ToDomainUser(modelUser)
	return &user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	modelUser := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query, modelUser.Username, modelUser.PasswordHash, modelUser.Role)
	if err != nil {
		return nil, translateError("save user", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, translateError("save user", err)
	}
	out := mapping.ToDomainUser(saved)
	return &out, nil
}

// EnsureUser inserts the user unless the username is taken. An existing row
// is left untouched.
func (r *PgxUserRepository) EnsureUser(ctx context.Context, user domain.User) (bool, error) {
	modelUser := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query, modelUser.Username, modelUser.PasswordHash, modelUser.Role)
	if err != nil {
		return false, translateError("ensure user", err)
	}
	return tag.RowsAffected() == 1, nil
}
