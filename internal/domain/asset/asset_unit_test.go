package asset

import (
	"strings"
	"testing"

	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTag() string {
	return strings.Repeat("A", TagLength)
}

func newTestUnit(t *testing.T) *AssetUnit {
	t.Helper()
	unit, err := NewAssetUnit(NewAssetUnitParams{
		Tag:           validTag(),
		ModelID:       uuid.New(),
		OwnerTenantID: uuid.New(),
	})
	require.NoError(t, err)
	return unit
}

func TestNormalizeTag(t *testing.T) {
	t.Run("uppercases and trims", func(t *testing.T) {
		raw := "  " + strings.Repeat("ab12", 6) + " "
		tag, err := NormalizeTag(raw)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("AB12", 6), tag)
		assert.Len(t, tag, TagLength)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		for _, raw := range []string{"", "SHORT", strings.Repeat("A", 23), strings.Repeat("A", 25)} {
			_, err := NormalizeTag(raw)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		}
	})
}

func TestNewAssetUnit(t *testing.T) {
	modelID := uuid.New()
	ownerID := uuid.New()

	t.Run("creates active unit", func(t *testing.T) {
		unit, err := NewAssetUnit(NewAssetUnitParams{
			Tag:           strings.ToLower(validTag()),
			ModelID:       modelID,
			OwnerTenantID: ownerID,
			Name:          "Pump",
		})
		require.NoError(t, err)
		assert.Equal(t, validTag(), unit.Tag)
		assert.True(t, unit.Active)
		assert.Equal(t, 1, unit.Version)
		assert.Equal(t, ownerID, unit.OwnerTenantID)
		assert.False(t, unit.LastUpdated.IsZero())
		assert.False(t, unit.IngestedAt.IsZero())
	})

	t.Run("rejects missing model", func(t *testing.T) {
		_, err := NewAssetUnit(NewAssetUnitParams{
			Tag:           validTag(),
			OwnerTenantID: ownerID,
		})
		assert.Error(t, err)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		_, err := NewAssetUnit(NewAssetUnitParams{
			Tag:     validTag(),
			ModelID: modelID,
		})
		assert.Error(t, err)
	})
}

func TestAssetUnit_AssignTo(t *testing.T) {
	t.Run("assigns without ownership transfer", func(t *testing.T) {
		unit := newTestUnit(t)
		owner := unit.OwnerTenantID
		target := uuid.New()

		require.NoError(t, unit.AssignTo(target, false))
		require.NotNil(t, unit.AssignedTenantID)
		assert.Equal(t, target, *unit.AssignedTenantID)
		assert.Equal(t, owner, unit.OwnerTenantID)
		assert.Equal(t, 2, unit.Version)
	})

	t.Run("transfers ownership when requested", func(t *testing.T) {
		unit := newTestUnit(t)
		target := uuid.New()

		require.NoError(t, unit.AssignTo(target, true))
		assert.Equal(t, target, unit.OwnerTenantID)
	})

	t.Run("rejects inactive record", func(t *testing.T) {
		unit := newTestUnit(t)
		require.NoError(t, unit.Deactivate())

		err := unit.AssignTo(uuid.New(), false)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestAssetUnit_Deactivate(t *testing.T) {
	unit := newTestUnit(t)

	require.NoError(t, unit.Deactivate())
	assert.False(t, unit.Active)
	assert.Equal(t, 2, unit.Version)

	assert.ErrorIs(t, unit.Deactivate(), shared.ErrInvalidState)
}

func TestAssetUnit_Unassign(t *testing.T) {
	unit := newTestUnit(t)
	require.NoError(t, unit.AssignTo(uuid.New(), false))

	require.NoError(t, unit.Unassign())
	assert.Nil(t, unit.AssignedTenantID)
	assert.True(t, unit.Active)

	require.NoError(t, unit.Deactivate())
	assert.ErrorIs(t, unit.Unassign(), shared.ErrInvalidState)
}

func TestAssetUnit_HeldBy(t *testing.T) {
	unit := newTestUnit(t)
	target := uuid.New()

	assert.False(t, unit.HeldBy(target))

	require.NoError(t, unit.AssignTo(target, false))
	assert.True(t, unit.HeldBy(target))
	assert.False(t, unit.HeldBy(uuid.New()))
}

func TestAssetUnit_Successor(t *testing.T) {
	unit := newTestUnit(t)
	unit.Name = "Pump"
	unit.Lot = "L-7"
	unit.Category = "hydraulics"
	holder := uuid.New()
	require.NoError(t, unit.AssignTo(holder, false))

	target := uuid.New()

	t.Run("carries descriptive fields to a fresh active record", func(t *testing.T) {
		next := unit.Successor(target, false)

		assert.NotEqual(t, unit.ID, next.ID)
		assert.Equal(t, unit.Tag, next.Tag)
		assert.Equal(t, unit.ModelID, next.ModelID)
		assert.Equal(t, unit.OwnerTenantID, next.OwnerTenantID)
		require.NotNil(t, next.AssignedTenantID)
		assert.Equal(t, target, *next.AssignedTenantID)
		assert.True(t, next.Active)
		assert.Equal(t, 1, next.Version)
		assert.Equal(t, "Pump", next.Name)
		assert.Equal(t, "L-7", next.Lot)
		assert.Equal(t, unit.IngestedAt, next.IngestedAt)
	})

	t.Run("moves ownership only when requested", func(t *testing.T) {
		next := unit.Successor(target, true)
		assert.Equal(t, target, next.OwnerTenantID)
	})
}
