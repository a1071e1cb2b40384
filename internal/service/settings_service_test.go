package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayanservices/crm-service/internal/domain"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

type fakeSettingsRepo struct {
	stored *domain.BusinessSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*domain.BusinessSettings, error) {
	if r.stored == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *r.stored
	return &copied, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, settings *domain.BusinessSettings) error {
	copied := *settings
	r.stored = &copied
	return nil
}

type fakeUserRepo struct {
	users []domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = "user-1"
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			return &r.users[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	return append([]domain.User{}, r.users...), nil
}

func TestSettingsGetCreatesDefaultsOnFirstRead(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, &fakeUserRepo{})

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.True(t, settings.NotifyOnStatusChange)
	assert.True(t, settings.NotifyOnCompletion)
	assert.NotNil(t, repo.stored)
}

func TestSettingsUpdateRoundTrip(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, &fakeUserRepo{})

	updated, err := svc.Update(context.Background(), SettingsInput{
		BusinessName:       "Zayan Services",
		Email:              "info@zayan.om",
		NotifyOnCompletion: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Zayan Services", updated.BusinessName)
	assert.False(t, updated.NotifyOnStatusChange)

	fetched, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Zayan Services", fetched.BusinessName)
}

func TestInviteUser(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewSettingsService(&fakeSettingsRepo{}, users)

	user, err := svc.InviteUser(context.Background(), InviteInput{Email: "  New@Zayan.om ", FullName: "New Operator"})
	require.NoError(t, err)
	assert.Equal(t, "new@zayan.om", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "invited", user.Status)

	_, err = svc.InviteUser(context.Background(), InviteInput{Email: "new@zayan.om"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	_, err = svc.InviteUser(context.Background(), InviteInput{Email: "x@zayan.om", Role: "owner"})
	assert.Error(t, err)
}
