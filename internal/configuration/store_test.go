package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSnapshotIsACopy(t *testing.T) {
	// GIVEN
	store := NewStore(validConfig())

	// WHEN
	snapshot := store.Snapshot()
	snapshot.Curve.Points[0].Duty = 99
	snapshot.Telemetry.Devices[0] = "sdz"

	// THEN
	unchanged := store.Snapshot()
	assert.Equal(t, 25, unchanged.Curve.Points[0].Duty)
	assert.Equal(t, "sda", unchanged.Telemetry.Devices[0])
}

func TestStoreSwapReplacesConfig(t *testing.T) {
	// GIVEN
	store := NewStore(validConfig())
	next := validConfig()
	next.Limits.MinDuty = 30

	// WHEN
	err := store.Swap(next)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 30, store.Snapshot().Limits.MinDuty)
}

func TestStoreSwapRejectsInvalidConfig(t *testing.T) {
	// GIVEN
	store := NewStore(validConfig())
	next := validConfig()
	next.Curve.Points = nil

	// WHEN
	err := store.Swap(next)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidConfig)
	// previous config remains in force
	assert.Len(t, store.Snapshot().Curve.Points, 3)
}
