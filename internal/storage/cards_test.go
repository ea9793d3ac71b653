package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hamdrew/solomon-draft/internal/cards"
)

// openTestDB creates a migrated database in a temp directory.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cards.db")
	require.NoError(t, Migrate(path))

	db, err := Open(DefaultConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestSaveAndGetCard(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	card := &cards.Card{
		ID:            "bolt-id",
		OracleID:      "bolt-oracle",
		Name:          "Lightning Bolt",
		TypeLine:      "Instant",
		SetCode:       "m21",
		ManaCost:      "{R}",
		CMC:           1,
		ColorIdentity: []string{"R"},
		Rarity:        "uncommon",
	}

	require.NoError(t, db.SaveCard(ctx, card))

	got, err := db.GetCardByName(ctx, "Lightning Bolt")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "bolt-id", got.ID)
	require.Equal(t, []string{"R"}, got.ColorIdentity)
	require.False(t, got.LastUpdated.IsZero(), "LastUpdated should be set")
}

func TestGetCardByName_Miss(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetCardByName(context.Background(), "No Such Card")
	require.NoError(t, err)
	require.Nil(t, got, "cache miss should return nil without an error")
}

func TestSaveCard_Upsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	card := &cards.Card{ID: "old-id", Name: "Shock", ColorIdentity: []string{"R"}}
	require.NoError(t, db.SaveCard(ctx, card))

	card.ID = "new-id"
	require.NoError(t, db.SaveCard(ctx, card))

	got, err := db.GetCardByName(ctx, "Shock")
	require.NoError(t, err)
	require.Equal(t, "new-id", got.ID)

	count, err := db.CountCards(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count, "upsert should not create a second row")
}

func TestGetCardsByNames(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, c := range []*cards.Card{
		{ID: "a", Name: "Counterspell", ColorIdentity: []string{"U"}},
		{ID: "b", Name: "Terminate", ColorIdentity: []string{"B", "R"}},
	} {
		require.NoError(t, db.SaveCard(ctx, c))
	}

	got, err := db.GetCardsByNames(ctx, []string{"Counterspell", "Terminate", "Missing Card"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.NotContains(t, got, "Missing Card")
	require.Equal(t, []string{"B", "R"}, got["Terminate"].ColorIdentity)
}

func TestGetCardsByNames_Empty(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetCardsByNames(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMigrate_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.db")

	require.NoError(t, Migrate(path))
	require.NoError(t, Migrate(path))
}
