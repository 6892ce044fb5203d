package telemetry

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// SnapshotReading is a single device's last known state from the cached
// status file.
type SnapshotReading struct {
	Device      string
	Temperature *float64
	PowerState  PowerState
	Media       MediaKind
}

// Snapshot holds the parsed contents of the status file, keyed by device
// name (e.g. "sda").
type Snapshot struct {
	Readings map[string]SnapshotReading
	ModTime  time.Time
}

// SnapshotProvider returns the last known reading per device from an
// externally refreshed source, independent of the engine's poll cadence.
type SnapshotProvider interface {
	Load() (Snapshot, error)
}

// FileSnapshot reads the Unraid disks.ini status file. The file is
// refreshed by the host on its own schedule; this provider only ever
// reads it.
type FileSnapshot struct {
	Path string
}

func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{Path: path}
}

func (f *FileSnapshot) Load() (Snapshot, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot stat snapshot file %s: %w", f.Path, err)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot read snapshot file %s: %w", f.Path, err)
	}

	return Snapshot{
		Readings: parseDisksIni(string(data)),
		ModTime:  info.ModTime(),
	}, nil
}

// parseDisksIni parses the disks.ini dialect: quoted section headers for
// each array slot, followed by key="value" lines. Only array data slots
// (diskN and parity*) are considered; cache/flash/transfer slots are
// skipped by name.
func parseDisksIni(content string) map[string]SnapshotReading {
	readings := map[string]SnapshotReading{}

	var (
		sectionName string
		device      string
		rotational  string
		spundown    string
		temp        string
	)

	flush := func() {
		if sectionName == "" {
			return
		}
		name := strings.ToLower(sectionName)
		if !strings.HasPrefix(name, "disk") && !strings.HasPrefix(name, "parity") {
			return
		}

		key := device
		if key == "" {
			key = name
		}

		media := MediaSolidState
		if rotational == "1" {
			media = MediaRotational
		}

		state := PowerStateStandby
		if spundown == "0" {
			state = PowerStateActive
		}

		readings[key] = SnapshotReading{
			Device:      key,
			Temperature: parseSnapshotTemp(temp),
			PowerState:  state,
			Media:       media,
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, `["`) && strings.HasSuffix(line, `"]`) {
			flush()
			sectionName = line[2 : len(line)-2]
			device, rotational, spundown, temp = "", "", "", ""
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `"`)

		switch key {
		case "device":
			device = value
		case "rotational":
			rotational = value
		case "spundown":
			spundown = value
		case "temp", "temperature":
			temp = value
		}
	}
	flush()

	return readings
}

// parseSnapshotTemp parses the temp field, which is "*" or empty while a
// value is unknown (e.g. right after boot or while spun down).
func parseSnapshotTemp(value string) *float64 {
	if value == "" || value == "*" {
		return nil
	}
	temp, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &temp
}
