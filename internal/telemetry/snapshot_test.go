package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const disksIniFixture = `
["parity"]
name="parity"
device="sdb"
rotational="1"
spundown="0"
temp="36"

["disk1"]
name="disk1"
device="sdc"
rotational="1"
spundown="1"
temp="*"

["disk2"]
name="disk2"
device="sdd"
rotational="0"
spundown="0"
temp="41"

["cache"]
name="cache"
device="nvme0n1"
rotational="0"
spundown="0"
temp="52"
`

func TestParseDisksIni(t *testing.T) {
	// WHEN
	readings := parseDisksIni(disksIniFixture)

	// THEN
	assert.Len(t, readings, 3)

	parity := readings["sdb"]
	assert.Equal(t, PowerStateActive, parity.PowerState)
	assert.Equal(t, MediaRotational, parity.Media)
	assert.Equal(t, 36.0, *parity.Temperature)

	disk1 := readings["sdc"]
	assert.Equal(t, PowerStateStandby, disk1.PowerState)
	assert.Nil(t, disk1.Temperature)

	// non-rotational array slots are kept but tagged, cache slots are not
	disk2 := readings["sdd"]
	assert.Equal(t, MediaSolidState, disk2.Media)
	_, hasCache := readings["nvme0n1"]
	assert.False(t, hasCache)
}

func TestParseDisksIniSectionNameFallback(t *testing.T) {
	// GIVEN
	content := `
["disk1"]
rotational="1"
spundown="0"
temp="38"
`

	// WHEN
	readings := parseDisksIni(content)

	// THEN
	reading, ok := readings["disk1"]
	assert.True(t, ok)
	assert.Equal(t, 38.0, *reading.Temperature)
}

func TestFileSnapshotLoad(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "disks.ini")
	err := os.WriteFile(path, []byte(disksIniFixture), 0o644)
	assert.NoError(t, err)

	snapshot := NewFileSnapshot(path)

	// WHEN
	result, err := snapshot.Load()

	// THEN
	assert.NoError(t, err)
	assert.Len(t, result.Readings, 3)
	assert.False(t, result.ModTime.IsZero())
}

func TestFileSnapshotLoadMissingFile(t *testing.T) {
	// GIVEN
	snapshot := NewFileSnapshot(filepath.Join(t.TempDir(), "nope.ini"))

	// WHEN
	_, err := snapshot.Load()

	// THEN
	assert.Error(t, err)
}
