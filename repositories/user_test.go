package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmplanner/api/testutil"
)

func TestUserReadsOmitPasswordHash(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, db, "a@example.com")

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, found.PasswordHash)

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].PasswordHash)
}

func TestUserFindByEmailIncludesHash(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "a@example.com")

	found, err := repo.FindByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "x", found.PasswordHash)
}

func TestUserUpdateLastLogin(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, db, "a@example.com")

	require.NoError(t, repo.UpdateLastLogin(user.ID))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLogin)
}

func TestUserPatchIgnoresPasswordHashColumn(t *testing.T) {
	// password_hash is deliberately off the allow-list: it only changes
	// through the controller's hashing path.
	for _, col := range userPatchColumns {
		assert.NotEqual(t, "password_hash", col.Name)
	}
}
