package admin

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/admin"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	items map[string]admin.Admin
}

func (f *fakeAdminRepo) Create(ctx context.Context, a admin.Admin) (admin.Admin, error) {
	for _, existing := range f.items {
		if existing.Username == a.Username {
			return admin.Admin{}, user.ErrUsernameExists
		}
	}
	f.items[a.ID] = a
	return a, nil
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id string) (admin.Admin, error) {
	a, ok := f.items[id]
	if !ok {
		return admin.Admin{}, admin.ErrAdminNotFound
	}
	return a, nil
}

func (f *fakeAdminRepo) List(ctx context.Context) ([]admin.Admin, error) {
	out := []admin.Admin{}
	for _, a := range f.items {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAdminRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return admin.ErrAdminNotFound
	}
	delete(f.items, id)
	return nil
}

func TestAdminService_Register(t *testing.T) {
	repo := &fakeAdminRepo{items: map[string]admin.Admin{}}
	svc := NewAdminService(repo)
	ctx := context.Background()

	resp, err := svc.Register(ctx, admin.RegisterAdminRequest{Username: "root", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "root", resp.Username)

	stored := repo.items[resp.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	_, err = svc.Register(ctx, admin.RegisterAdminRequest{Username: "root", Password: "another"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestAdminService_ListAndDelete(t *testing.T) {
	repo := &fakeAdminRepo{items: map[string]admin.Admin{
		"a-1": {ID: "a-1", Username: "root"},
		"a-2": {ID: "a-2", Username: "ops"},
	}}
	svc := NewAdminService(repo)
	ctx := context.Background()

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, "a-1"))
	assert.ErrorIs(t, svc.Delete(ctx, "a-1"), admin.ErrAdminNotFound)

	_, err = svc.Get(ctx, "a-1")
	assert.ErrorIs(t, err, admin.ErrAdminNotFound)
}
