package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	bolt "go.etcd.io/bbolt"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/ui"
	"github.com/CameraRick/onAir-fanControl/internal/util"
)

const BucketSamples = "samples"

// Sample is one recorded control data point.
type Sample struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperature"`
	Duty        int       `json:"duty"`
}

// Stats are aggregates over the in-memory sample window.
type Stats struct {
	AvgTemperature float64 `json:"avgTemperature"`
	MaxTemperature float64 `json:"maxTemperature"`
	AvgDuty        float64 `json:"avgDuty"`
	MaxDuty        float64 `json:"maxDuty"`
}

// Source yields the current control data point to record.
type Source func() (temperature *float64, duty int)

// Recorder samples engine output on a fixed interval, keeps a bounded
// in-memory window for the status api and persists the same window so
// it survives restarts.
type Recorder struct {
	dbPath     string
	interval   time.Duration
	maxSamples int
	source     Source

	mu         sync.Mutex
	samples    []Sample
	tempWindow *rolling.PointPolicy
	dutyWindow *rolling.PointPolicy
	tempCount  int
}

func NewRecorder(config configuration.HistoryConfig, source Source) *Recorder {
	return &Recorder{
		dbPath:     config.DbPath,
		interval:   config.SampleInterval,
		maxSamples: config.MaxSamples,
		source:     source,
		tempWindow: util.CreateRollingWindow(config.MaxSamples),
		dutyWindow: util.CreateRollingWindow(config.MaxSamples),
	}
}

// Init ensures the db directory exists and warms the in-memory window
// from previously persisted samples.
func (r *Recorder) Init() error {
	parentDir := filepath.Dir(r.dbPath)
	_, err := os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		if err := os.MkdirAll(parentDir, 0755); err != nil {
			return err
		}
	}

	persisted, err := r.loadSamples()
	if err != nil {
		// a damaged history db is not worth refusing to start over
		ui.Warning("Cannot restore sample history: %v", err)
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sample := range persisted {
		r.appendLocked(sample)
	}
	return nil
}

// Run records one sample per interval until the context is cancelled.
func (r *Recorder) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping history recorder...")
			return nil
		case <-ticker.C:
			temperature, duty := r.source()
			r.Record(Sample{
				Timestamp:   time.Now(),
				Temperature: temperature,
				Duty:        duty,
			})
		}
	}
}

// Record appends one sample to the window and persists it.
func (r *Recorder) Record(sample Sample) {
	r.mu.Lock()
	r.appendLocked(sample)
	r.mu.Unlock()

	if err := r.persistSample(sample); err != nil {
		ui.Warning("Cannot persist history sample: %v", err)
	}
}

func (r *Recorder) appendLocked(sample Sample) {
	r.samples = append(r.samples, sample)
	if len(r.samples) > r.maxSamples {
		r.samples = r.samples[len(r.samples)-r.maxSamples:]
	}

	r.dutyWindow.Append(float64(sample.Duty))
	if sample.Temperature != nil {
		r.tempWindow.Append(*sample.Temperature)
		if r.tempCount < r.maxSamples {
			r.tempCount++
		}
	}
}

// Samples returns a copy of the in-memory sample window, oldest first.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	samples := make([]Sample, len(r.samples))
	copy(samples, r.samples)
	return samples
}

// Stats returns aggregates over the in-memory sample window.
func (r *Recorder) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := Stats{}
	if len(r.samples) > 0 {
		stats.AvgDuty = util.GetWindowAvg(r.dutyWindow)
		stats.MaxDuty = util.GetWindowMax(r.dutyWindow)
	}
	if r.tempCount > 0 {
		stats.AvgTemperature = util.GetWindowAvg(r.tempWindow)
		stats.MaxTemperature = util.GetWindowMax(r.tempWindow)
	}
	return stats
}

func (r *Recorder) openDb() (*bolt.DB, error) {
	return bolt.Open(r.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
}

func (r *Recorder) persistSample(sample Sample) error {
	db, err := r.openDb()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	key := []byte(sample.Timestamp.UTC().Format(time.RFC3339Nano))

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketSamples))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		if err := b.Put(key, data); err != nil {
			return err
		}

		// drop the oldest entries beyond the window; keys sort by time
		count := 0
		cursor := b.Cursor()
		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			count++
		}
		for ; count > r.maxSamples; count-- {
			k, _ := cursor.First()
			if k == nil {
				break
			}
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Recorder) loadSamples() ([]Sample, error) {
	if _, err := os.Stat(r.dbPath); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	db, err := r.openDb()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var samples []Sample
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSamples))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var sample Sample
			if err := json.Unmarshal(v, &sample); err != nil {
				return err
			}
			samples = append(samples, sample)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if len(samples) > r.maxSamples {
		samples = samples[len(samples)-r.maxSamples:]
	}
	return samples, nil
}
