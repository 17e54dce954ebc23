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

const accountColumns = `id, customer_id, type, currency, nickname, status, balance, created_at, updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account and returns the stored row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (customer_id, type, currency, nickname, status, balance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + accountColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query,
		modelAcc.CustomerID,
		modelAcc.Type,
		modelAcc.Currency,
		modelAcc.Nickname,
		modelAcc.Status,
		modelAcc.Balance,
	)
	if err != nil {
		return nil, translateError("save account", err)
	}
	return collectOneAccount("save account", rows)
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, translateError(fmt.Sprintf("find account %d", accountID), err)
	}
	return collectOneAccount(fmt.Sprintf("find account %d", accountID), rows)
}

// ListAccountsByCustomer retrieves every account owned by a customer, oldest first.
func (r *PgxAccountRepository) ListAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY id;`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, translateError(fmt.Sprintf("list accounts for customer %d", customerID), err)
	}
	modelAccs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, translateError(fmt.Sprintf("list accounts for customer %d", customerID), err)
	}
	return mapping.ToDomainAccountSlice(modelAccs), nil
}

// UpdateAccount applies the supplied fields of patch in a single statement.
// A CLOSED row keeps its status whatever the patch says.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch) (*domain.Account, error) {
	nickname, setNickname := patch.Nickname.Get()
	status, setStatus := patch.Status.Get()

	query := `
		UPDATE accounts
		SET nickname = CASE WHEN $2::boolean THEN $3 ELSE nickname END,
			status = CASE
				WHEN status = 'CLOSED' THEN status
				WHEN $4::boolean THEN $5
				ELSE status
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, setNickname, nickname, setStatus, string(status))
	if err != nil {
		return nil, translateError(fmt.Sprintf("update account %d", accountID), err)
	}
	return collectOneAccount(fmt.Sprintf("update account %d", accountID), rows)
}

func collectOneAccount(op string, rows pgx.Rows) (*domain.Account, error) {
	modelAcc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, translateError(op, err)
	}
	acc := mapping.ToDomainAccount(modelAcc)
	return &acc, nil
}
