/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats_test.go
Description: Tests for conversion statistics.
*/

package monitoring_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCountsConversions(t *testing.T) {
	stats := monitoring.NewStats()
	c, err := core.NewConverter(nil, nil, stats)
	require.NoError(t, err)

	_, err = c.Convert([]byte(`{"a": 1}`), interfaces.FormatJSON)
	require.NoError(t, err)
	_, err = c.Convert([]byte(`<r a="1"/>`), interfaces.FormatXML)
	require.NoError(t, err)
	_, err = c.Convert([]byte("x"), interfaces.FormatCSV)
	require.Error(t, err)
	_, err = c.Convert([]byte(`{`), interfaces.FormatJSON)
	require.Error(t, err)

	snap := stats.Snapshot()
	assert.Equal(t, int64(2), snap.Conversions)
	assert.Equal(t, int64(2), snap.Failures)
	assert.Equal(t, int64(18), snap.BytesIn)
	assert.Equal(t, int64(4), snap.Nodes)
	assert.Equal(t, map[string]int64{"json": 1, "xml": 1}, snap.ByFormat)
	assert.Equal(t, map[string]int64{"attributes": 1}, snap.ByStructure)
	assert.Equal(t, map[string]int64{"delimiter_detection": 1, "malformed_input": 1}, snap.ByErrorKind)
}

func TestSnapshotIsACopy(t *testing.T) {
	stats := monitoring.NewStats()
	stats.OnFailure("id", interfaces.FormatJSON, interfaces.ErrMalformedInput)

	snap := stats.Snapshot()
	snap.ByErrorKind["malformed_input"] = 100
	assert.Equal(t, int64(1), stats.Snapshot().ByErrorKind["malformed_input"])
}

func TestStatsConcurrentUpdates(t *testing.T) {
	stats := monitoring.NewStats()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.OnConversion(&core.Result{Format: interfaces.FormatCSV, InputSize: 10, Nodes: 3, Duration: time.Millisecond})
		}()
	}
	wg.Wait()

	snap := stats.Snapshot()
	assert.Equal(t, int64(16), snap.Conversions)
	assert.Equal(t, int64(160), snap.BytesIn)
	assert.Equal(t, time.Millisecond, snap.AvgDuration)
	assert.Empty(t, snap.ByStructure)
}

func TestRunStopsWithContext(t *testing.T) {
	stats := monitoring.NewStats()
	ctx, cancel := context.WithCancel(context.Background())

	ticks := make(chan monitoring.Snapshot, 8)
	done := make(chan struct{})
	go func() {
		stats.Run(ctx, 5*time.Millisecond, func(s monitoring.Snapshot) {
			select {
			case ticks <- s:
			default:
			}
		})
		close(done)
	}()

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
