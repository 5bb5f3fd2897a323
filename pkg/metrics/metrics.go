package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

// Metric names recorded by the web layer
const (
	MetricApiRequests    = "storefront_api_requests"
	MetricApiErrors      = "storefront_api_errors"
	MetricAdminMutations = "storefront_admin_mutations"
	MetricMediaUploads   = "storefront_media_uploads"
)

var (
	store tstorage.Storage
	mu    sync.RWMutex

	// tstorage keeps one sample per timestamp, so every sample gets its own nanosecond
	clockMu sync.Mutex
	lastTs  int64
)

// Point is a single sample
type Point struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// InitMetrics opens the time series storage under dir. An empty dir keeps everything in memory.
func InitMetrics(dir string) error {
	opts := []tstorage.Option{
		tstorage.WithTimestampPrecision(tstorage.Nanoseconds),
		tstorage.WithRetention(7 * 24 * time.Hour),
	}
	if dir != "" {
		opts = append(opts, tstorage.WithDataPath(dir))
	}
	s, err := tstorage.NewStorage(opts...)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if store != nil {
		_ = store.Close()
	}
	store = s
	return nil
}

func nextTimestamp() int64 {
	clockMu.Lock()
	defer clockMu.Unlock()
	ts := time.Now().UnixNano()
	if ts <= lastTs {
		ts = lastTs + 1
	}
	lastTs = ts
	return ts
}

// Incr records one occurrence of name
func Incr(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if store == nil {
		return
	}
	_ = store.InsertRows([]tstorage.Row{{
		Metric:    name,
		DataPoint: tstorage.DataPoint{Timestamp: nextTimestamp(), Value: 1},
	}})
}

// Query returns the samples of name within [start, end), timestamps in unix seconds
func Query(name string, start, end time.Time) ([]Point, error) {
	mu.RLock()
	defer mu.RUnlock()
	if store == nil {
		return []Point{}, nil
	}
	dps, err := store.Select(name, nil, start.UnixNano(), end.UnixNano())
	if errors.Is(err, tstorage.ErrNoDataPoints) {
		return []Point{}, nil
	}
	if err != nil {
		return nil, err
	}
	points := make([]Point, 0, len(dps))
	for _, dp := range dps {
		points = append(points, Point{Timestamp: dp.Timestamp / int64(time.Second), Value: dp.Value})
	}
	return points, nil
}

// Sum adds up the samples of name within [start, end)
func Sum(name string, start, end time.Time) (float64, error) {
	points, err := Query(name, start, end)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return total, nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}
