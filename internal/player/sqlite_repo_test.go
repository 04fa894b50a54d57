package player

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvadroide/Devshop-Tycoon/internal/config"
)

func testDefaults() State {
	return Defaults(config.Default(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := NewSQLiteRepo(filepath.Join(t.TempDir(), "game.db"), testDefaults)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestLoadCreatesDefaultsOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, s.Money)
	assert.Equal(t, 100, s.Energy)
	assert.Equal(t, 100, s.MaxEnergy)
	assert.Equal(t, 1, s.Level)
	assert.Empty(t, s.UpgradeList())
	assert.Equal(t, 0, s.JuniorDevs)
	assert.False(t, s.LastUpdated.IsZero())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	s, err := repo.Load(ctx)
	require.NoError(t, err)

	s.Money = 1234
	s.Energy = 55
	s.MaxEnergy = 125
	s.XP = 42
	s.Level = 3
	s.Upgrades["faster_pc"] = true
	s.Upgrades["ergonomic_chair"] = true
	s.JuniorDevs = 4
	s.LastUpdated = time.Date(2026, 3, 2, 8, 30, 0, 123456789, time.UTC)
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1234, got.Money)
	assert.Equal(t, 55, got.Energy)
	assert.Equal(t, 125, got.MaxEnergy)
	assert.Equal(t, 42, got.XP)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, []string{"ergonomic_chair", "faster_pc"}, got.UpgradeList())
	assert.Equal(t, 4, got.JuniorDevs)
	assert.True(t, got.LastUpdated.Equal(s.LastUpdated))
}

func TestRecordSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "game.db")

	repo, err := NewSQLiteRepo(path, testDefaults)
	require.NoError(t, err)
	s, err := repo.Load(ctx)
	require.NoError(t, err)
	s.Money = 777
	require.NoError(t, repo.Save(ctx, s))
	require.NoError(t, repo.Close())

	repo2, err := NewSQLiteRepo(path, testDefaults)
	require.NoError(t, err)
	defer repo2.Close()
	got, err := repo2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 777, got.Money)
}

func TestNormalizeClampsLoadedState(t *testing.T) {
	s := Normalize(State{Energy: 250, MaxEnergy: 100, Level: 0, JuniorDevs: -2})
	assert.Equal(t, 100, s.Energy)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0, s.JuniorDevs)
	assert.NotNil(t, s.Upgrades)
}

func TestMemoryRepoSeedsOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(testDefaults)

	s, err := repo.Load(ctx)
	require.NoError(t, err)
	s.Money = 9000
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9000, got.Money)
}

func TestCloneIsIndependent(t *testing.T) {
	s := testDefaults()
	s.Upgrades["faster_pc"] = true
	c := Clone(s)
	c.Upgrades["coffee_machine"] = true
	assert.False(t, s.Upgrades["coffee_machine"])
}
