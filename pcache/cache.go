package pcache

import (
	"letlang/engine/ast"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"
	"github.com/segmentio/fasthash/fnv1a"
)

// PCache is a process-level cache of parsed programs keyed by their source.
// Trees are immutable once parsed, so one cached tree can be evaluated by
// many goroutines at once.
type PCache struct {
	Cache *ristretto.Cache
}

// NewPCache creates a new instance of PCache holding upto maxCost bytes of
// program source.
// https://pkg.go.dev/github.com/dgraph-io/ristretto#Config
func NewPCache(maxCost int64, averageItemCost int64) (PCache, error) {
	expectedMaxItems := maxCost / averageItemCost
	if expectedMaxItems < 1 {
		expectedMaxItems = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * expectedMaxItems,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
		// cost is the size of the program only
		IgnoreInternalCost: true,
		KeyToHash:          keyToHash,
	})
	if err != nil {
		return PCache{}, err
	}
	return PCache{
		Cache: cache,
	}, nil
}

// keyToHash hashes program source twice, the second hash tells apart programs
// whose first hashes collide.
func keyToHash(key interface{}) (uint64, uint64) {
	program := key.(string)
	return xxhash.Sum64String(program), fnv1a.HashString64(program)
}

func (pc PCache) Get(program string) (ast.Ast, bool) {
	v, ok := pc.Cache.Get(program)
	if !ok {
		return nil, false
	}
	tree, ok := v.(ast.Ast)
	return tree, ok
}

// Set stores tree with the length of its source as cost. Like any ristretto
// write it may be dropped, and becomes visible asynchronously.
func (pc PCache) Set(program string, tree ast.Ast) bool {
	return pc.Cache.Set(program, tree, int64(len(program)))
}

// Wait blocks until previous Sets are visible.
func (pc PCache) Wait() {
	pc.Cache.Wait()
}

func (pc PCache) Close() {
	pc.Cache.Close()
}
