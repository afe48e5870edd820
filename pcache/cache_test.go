package pcache

import (
	"fmt"
	"testing"
	"time"

	"letlang/engine/ast"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCache_Get(t *testing.T) {
	cache, err := NewPCache(1<<10, 1<<4)
	require.NoError(t, err)
	defer cache.Close()

	program := "(add (val 1) (val 2))"
	tree := ast.MakeAdd(ast.MakeVal(1), ast.MakeVal(2))

	// initially, should get nothing as this key was not set
	_, ok := cache.Get(program)
	assert.False(t, ok)

	// set it now
	assert.True(t, cache.Set(program, tree))
	cache.Wait()

	// should get it, the very same tree
	found, ok := cache.Get(program)
	assert.True(t, ok)
	assert.Same(t, tree, found)

	// other programs are still misses
	_, ok = cache.Get("(val 1)")
	assert.False(t, ok)
}

func TestPCache_Bounded(t *testing.T) {
	cache, err := NewPCache(64, 16)
	require.NoError(t, err)
	defer cache.Close()
	for i := 0; i < 100; i++ {
		cache.Set(fmt.Sprintf("(val %d)", i), ast.MakeVal(int64(i)))
	}
	cache.Wait()
	m := cache.Cache.Metrics
	assert.LessOrEqual(t, m.CostAdded()-m.CostEvicted(), uint64(64))
}

func TestRecordStats(t *testing.T) {
	cache, err := NewPCache(1<<10, 1<<4)
	require.NoError(t, err)
	defer cache.Close()
	cache.Set("(val 1)", ast.MakeVal(1))
	cache.Wait()
	cache.Get("(val 1)")
	cache.Get("(val 2)")

	RecordStats("test", cache)
	assert.Equal(t, float64(1), testutil.ToFloat64(cacheStatsGauge.WithLabelValues("test:hits")))
	assert.Equal(t, float64(1), testutil.ToFloat64(cacheStatsGauge.WithLabelValues("test:misses")))
	assert.Equal(t, float64(len("(val 1)")), testutil.ToFloat64(cacheStatsGauge.WithLabelValues("test:size")))

	stop := make(chan struct{})
	ReportPeriodically("periodic", cache, time.Millisecond, stop)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(cacheStatsGauge.WithLabelValues("periodic:hits")) == 1
	}, time.Second, 5*time.Millisecond)
	close(stop)
}

func TestKeyToHash(t *testing.T) {
	k1, c1 := keyToHash("(val 1)")
	k2, c2 := keyToHash("(val 1)")
	assert.Equal(t, k1, k2)
	assert.Equal(t, c1, c2)

	k3, c3 := keyToHash("(val 2)")
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, c1, c3)
}
