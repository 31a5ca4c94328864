//go:build integration

package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/testhelpers"
)

type contactTestContext struct {
	t      *testing.T
	testDB *testhelpers.TestDB
	repo   ContactRepository
}

func setupContactTest(t *testing.T) *contactTestContext {
	testDB := testhelpers.GetTestDB(t)
	testhelpers.Truncate(t, testDB.DB, "contacts")
	return &contactTestContext{
		t:      t,
		testDB: testDB,
		repo:   NewContactRepository(testDB.DB),
	}
}

func (tc *contactTestContext) newContact(name, email string) *models.Contact {
	tc.t.Helper()
	contact := &models.Contact{
		Name:        name,
		CompanyName: "Acme Ltd",
		Role:        "Ops Director",
		Email:       email,
		Source:      models.ContactSourceReferral,
		Status:      "prospect",
	}
	require.NoError(tc.t, tc.repo.Create(context.Background(), contact))
	return contact
}

func TestContactRepositoryCreate(t *testing.T) {
	tc := setupContactTest(t)
	ctx := context.Background()

	contact := tc.newContact("Jane Doe", "jane@acme.example")

	assert.NotEqual(t, uuid.Nil, contact.ID)
	assert.False(t, contact.CreatedAt.IsZero())
	assert.False(t, contact.UpdatedAt.IsZero())

	t.Run("round-trips through GetByID", func(t *testing.T) {
		got, err := tc.repo.GetByID(ctx, contact.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, "jane@acme.example", got.Email)
		assert.Equal(t, models.ContactSourceReferral, got.Source)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		dup := &models.Contact{
			Name:   "Janet Doe",
			Email:  "jane@acme.example",
			Source: models.ContactSourceOther,
			Status: "prospect",
		}
		err := tc.repo.Create(ctx, dup)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestContactRepositoryUpdate(t *testing.T) {
	tc := setupContactTest(t)
	ctx := context.Background()

	contact := tc.newContact("Jane Doe", "jane@acme.example")

	contact.Name = "Jane Smith"
	contact.Status = "active"
	require.NoError(t, tc.repo.Update(ctx, contact))

	got, err := tc.repo.GetByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", got.Name)
	assert.Equal(t, "active", got.Status)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))

	t.Run("unknown contact yields not found", func(t *testing.T) {
		missing := tc.newContact("Temp", "temp@acme.example")
		missing.ID = uuid.New()
		assert.ErrorIs(t, tc.repo.Update(ctx, missing), apperrors.ErrNotFound)
	})

	t.Run("email collision yields conflict", func(t *testing.T) {
		other := tc.newContact("Bob", "bob@acme.example")
		other.Email = "jane@acme.example"
		assert.ErrorIs(t, tc.repo.Update(ctx, other), apperrors.ErrConflict)
	})
}

func TestContactRepositoryDelete(t *testing.T) {
	tc := setupContactTest(t)
	ctx := context.Background()

	contact := tc.newContact("Jane Doe", "jane@acme.example")

	require.NoError(t, tc.repo.Delete(ctx, contact.ID))

	_, err := tc.repo.GetByID(ctx, contact.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, tc.repo.Delete(ctx, contact.ID), apperrors.ErrNotFound)
}

func TestContactRepositoryList(t *testing.T) {
	tc := setupContactTest(t)
	ctx := context.Background()

	first := tc.newContact("Zoe", "zoe@acme.example")
	second := tc.newContact("Alice", "alice@acme.example")
	third := tc.newContact("Mike", "mike@acme.example")

	contacts, err := tc.repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, third.ID, contacts[0].ID, "newest first")
	assert.Equal(t, second.ID, contacts[1].ID)
	assert.Equal(t, first.ID, contacts[2].ID)
}
