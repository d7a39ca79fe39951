package user

import (
	"context"
)

// AccountRepository reads and updates credentials for one role's table.
type AccountRepository interface {
	GetAccountByUsername(ctx context.Context, username string) (Account, error)
	GetAccountByID(ctx context.Context, id string) (Account, error)
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
}
