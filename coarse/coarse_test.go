package coarse

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerwatch/hashset/internal/testutil"
)

func identityHash(x int) uint64 { return uint64(x) }

func TestBasicScenario(t *testing.T) {
	s := New[int](4, identityHash, nil, "t")
	require.True(t, s.Add(1))
	require.False(t, s.Add(1))
	require.True(t, s.Contains(1))
	require.True(t, s.Remove(1))
	require.False(t, s.Contains(1))
	require.EqualValues(t, 0, s.Size())
}

func TestResizeTrigger(t *testing.T) {
	s := New[int](1, identityHash, nil, "t")
	for i := 0; i < 5; i++ {
		require.True(t, s.Add(i))
	}
	require.GreaterOrEqual(t, len(s.table.Buckets), 2)
	require.EqualValues(t, 5, s.Size())
}

func TestAdversarialCollisionChain(t *testing.T) {
	s := New[int](4, func(int) uint64 { return 0 }, nil, "t")
	for i := 0; i < 100; i++ {
		require.True(t, s.Add(i))
	}
	for i := 0; i < 100; i++ {
		require.True(t, s.Contains(i))
	}
	require.EqualValues(t, 100, s.Size())
}

// TestConcurrentDisjointInsert fans out several goroutines across
// disjoint ranges of values; afterward Size() must equal the total
// count and every element must be present exactly once.
func TestConcurrentDisjointInsert(t *testing.T) {
	const workers = 8
	const perWorker = 500
	s := New[int](4, identityHash, nil, "t")

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			base := w * perWorker
			for i := 0; i < perWorker; i++ {
				s.Add(base + i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.EqualValues(t, workers*perWorker, s.Size())
	for i := 0; i < workers*perWorker; i++ {
		require.True(t, s.Contains(i), "missing %d", i)
	}
}

// TestResizeRace trips the load-factor policy from many goroutines at
// once; afterward the count and membership must survive and the table
// must have grown to at least n/5 buckets.
func TestResizeRace(t *testing.T) {
	s := New[int](1, identityHash, nil, "t")

	var wg sync.WaitGroup
	const n = 2000
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			s.Add(i)
		}()
	}
	wg.Wait()

	require.EqualValues(t, n, s.Size())
	for i := 0; i < n; i++ {
		require.True(t, s.Contains(i))
	}
	require.GreaterOrEqual(t, len(s.table.Buckets), n/5)
}

// TestConcurrentMixedOpsAgainstOracle runs the same interleaved
// Add/Remove/Contains calls against coarse's Set and an independent
// testutil.Oracle bitmap under a shared external lock, so every pair of
// calls is applied to both in the same order. Because coarse's Size and
// every operation are true linearization-point reads (unlike striped
// and refinable), the two must agree exactly at the end, giving a
// cross-check independent of the set's own internal bookkeeping.
func TestConcurrentMixedOpsAgainstOracle(t *testing.T) {
	const rangeSize = 64
	s := New[int](4, identityHash, nil, "t")
	oracle := testutil.NewOracle()
	var pairLock sync.Mutex
	var mismatches int

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 1000; i++ {
				v := (i + w) % rangeSize
				pairLock.Lock()
				var want, got bool
				switch i % 3 {
				case 0:
					want, got = oracle.Add(uint32(v)), s.Add(v)
				case 1:
					want, got = oracle.Remove(uint32(v)), s.Remove(v)
				default:
					want, got = oracle.Contains(uint32(v)), s.Contains(v)
				}
				if want != got {
					mismatches++
				}
				pairLock.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Zero(t, mismatches, "coarse Set disagreed with the oracle at least once")
	require.EqualValues(t, oracle.Len(), s.Size())
	for v := 0; v < rangeSize; v++ {
		require.Equal(t, oracle.Contains(uint32(v)), s.Contains(v))
	}
}
