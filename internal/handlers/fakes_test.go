package handlers_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_bank_api/internal/core/ports/repositories"
)

// memoryAccountRepo mirrors the SQL repository: ids are assigned on insert
// and a CLOSED status never reverts.
type memoryAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]domain.Account
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: map[int64]domain.Account{}}
}

var _ portsrepo.AccountRepositoryFacade = (*memoryAccountRepo)(nil)

func (r *memoryAccountRepo) SaveAccount(_ context.Context, account domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	account.ID = r.nextID
	now := time.Now()
	account.CreatedAt, account.UpdatedAt = now, now
	r.accounts[account.ID] = account
	return &account, nil
}

func (r *memoryAccountRepo) FindAccountByID(_ context.Context, accountID int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (r *memoryAccountRepo) ListAccountsByCustomer(_ context.Context, customerID int64) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Account
	for _, a := range r.accounts {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryAccountRepo) UpdateAccount(_ context.Context, accountID int64, patch domain.AccountPatch) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if nickname, set := patch.Nickname.Get(); set {
		account.Nickname = &nickname
	}
	if status, set := patch.Status.Get(); set && account.Status != domain.StatusClosed {
		account.Status = status
	}
	account.UpdatedAt = time.Now()
	r.accounts[accountID] = account
	return &account, nil
}

type memoryUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]domain.User{}}
}

var _ portsrepo.UserRepositoryFacade = (*memoryUserRepo)(nil)

func (r *memoryUserRepo) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepo) SaveUser(_ context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, apperrors.ErrDuplicate
	}
	r.nextID++
	user.UserID = r.nextID
	r.users[user.Username] = user
	return &user, nil
}

func (r *memoryUserRepo) EnsureUser(ctx context.Context, user domain.User) (bool, error) {
	if _, err := r.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
