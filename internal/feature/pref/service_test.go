package pref

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dogmatch/internal/domain"
	"dogmatch/internal/repo/memory"
)

func newService(t *testing.T) (*memory.PrefRepo, *Service) {
	t.Helper()
	repo := memory.NewPrefRepo(memory.NewStore())
	return repo, NewService(repo)
}

func TestGet(t *testing.T) {
	repo, svc := newService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Create(ctx, domain.DefaultPrefs(1)))
	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "b,y,a,s", p.Age)
	assert.Equal(t, "m,f", p.Gender)
	assert.Equal(t, "s,m,l,xl", p.Size)
}

func TestUpdate(t *testing.T) {
	repo, svc := newService(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, domain.DefaultPrefs(1)))

	p, err := svc.Update(ctx, 1, "a,s", "f", "l,xl")
	require.NoError(t, err)
	assert.Equal(t, "a,s", p.Age)
	assert.Equal(t, "f", p.Gender)
	assert.Equal(t, "l,xl", p.Size)

	// 写入已落库
	stored, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a,s", stored.Age)
	assert.Equal(t, uint(1), stored.UserID)
}

func TestUpdateRejectsBadLists(t *testing.T) {
	repo, svc := newService(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, domain.DefaultPrefs(1)))

	_, err := svc.Update(ctx, 1, "b,q", "m,m", "s")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid character in ages", ve.Fields["age"])
	assert.Equal(t, "repeated character in genders", ve.Fields["gender"])

	// 校验失败不落库
	stored, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "b,y,a,s", stored.Age)
	assert.Equal(t, "m,f", stored.Gender)
}

func TestUpdateMissingRecord(t *testing.T) {
	_, svc := newService(t)
	_, err := svc.Update(context.Background(), 42, "a", "f", "s")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
