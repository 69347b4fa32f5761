/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats.go
Description: Conversion statistics for xmlforge. Stats implements the core Reporter
interface and keeps running counters per input format, document structure and error
kind. Snapshots are plain values suitable for JSON reports and the HTTP stats endpoint.
*/

package monitoring

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/kleascm/xmlforge/pkg/interfaces"
)

// Snapshot is a point-in-time copy of the statistics
type Snapshot struct {
	Timestamp     time.Time        `json:"timestamp"`
	Uptime        time.Duration    `json:"uptime"`
	Conversions   int64            `json:"conversions"`
	Failures      int64            `json:"failures"`
	BytesIn       int64            `json:"bytes_in"`
	Nodes         int64            `json:"nodes"`
	TotalDuration time.Duration    `json:"total_duration"`
	AvgDuration   time.Duration    `json:"avg_duration"`
	ByFormat      map[string]int64 `json:"by_format"`
	ByStructure   map[string]int64 `json:"by_structure"`
	ByErrorKind   map[string]int64 `json:"by_error_kind"`
}

// Stats collects conversion statistics. Safe for concurrent use.
type Stats struct {
	startTime time.Time

	conversions   atomic.Int64
	failures      atomic.Int64
	bytesIn       atomic.Int64
	nodes         atomic.Int64
	totalDuration atomic.Int64

	mu          sync.Mutex
	byFormat    map[string]int64
	byStructure map[string]int64
	byErrorKind map[string]int64
}

// NewStats creates an empty collector
func NewStats() *Stats {
	return &Stats{
		startTime:   time.Now(),
		byFormat:    make(map[string]int64),
		byStructure: make(map[string]int64),
		byErrorKind: make(map[string]int64),
	}
}

var _ core.Reporter = (*Stats)(nil)

// OnConversion records a finished conversion
func (s *Stats) OnConversion(result *core.Result) {
	s.conversions.Add(1)
	s.bytesIn.Add(int64(result.InputSize))
	s.nodes.Add(int64(result.Nodes))
	s.totalDuration.Add(int64(result.Duration))

	s.mu.Lock()
	s.byFormat[result.Format.String()]++
	if result.Format == interfaces.FormatXML {
		s.byStructure[result.Structure.String()]++
	}
	s.mu.Unlock()
}

// OnFailure records a failed conversion by error kind
func (s *Stats) OnFailure(id string, format interfaces.Format, err error) {
	s.failures.Add(1)

	s.mu.Lock()
	s.byErrorKind[interfaces.KindOf(err)]++
	s.mu.Unlock()
}

// Snapshot returns a copy of the current statistics
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		Timestamp:     time.Now(),
		Uptime:        time.Since(s.startTime),
		Conversions:   s.conversions.Load(),
		Failures:      s.failures.Load(),
		BytesIn:       s.bytesIn.Load(),
		Nodes:         s.nodes.Load(),
		TotalDuration: time.Duration(s.totalDuration.Load()),
	}
	if snap.Conversions > 0 {
		snap.AvgDuration = snap.TotalDuration / time.Duration(snap.Conversions)
	}

	s.mu.Lock()
	snap.ByFormat = copyCounts(s.byFormat)
	snap.ByStructure = copyCounts(s.byStructure)
	snap.ByErrorKind = copyCounts(s.byErrorKind)
	s.mu.Unlock()

	return snap
}

// Run calls fn with a fresh snapshot every interval until ctx is done
func (s *Stats) Run(ctx context.Context, interval time.Duration, fn func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(s.Snapshot())
		}
	}
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
