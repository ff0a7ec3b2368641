package source

import "iter"

// Source yields batches of items to the pacer scheduling loop.
//
// A Source hands out every element exactly once, in original order, across
// the whole run. It is owned and driven by a single goroutine; callers must
// not share one Source between concurrent loops or reuse it after it
// reports exhaustion.
type Source[T any] interface {
	// Take returns up to n items and whether the source is now exhausted.
	// n is always > 0. The returned batch may be shorter than n (or empty)
	// when the source runs out.
	Take(n int) (batch []T, exhausted bool)
}

// sliceSource walks a borrowed slice, returning sub-slice views.
type sliceSource[T any] struct {
	items []T
	next  int // invariant: next <= len(items)
}

// FromSlice returns a Source over a fixed slice.
//
// Batches are views into the original slice; nothing is copied. The slice
// must not be mutated while the run is in progress.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: items}
}

func (s *sliceSource[T]) Take(n int) ([]T, bool) {
	start := s.next

	end := start + n
	if end > len(s.items) {
		end = len(s.items)
	}
	s.next = end

	return s.items[start:end], end == len(s.items)
}

// seqSource pulls items from a one-shot forward sequence.
type seqSource[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

// FromSeq returns a Source over a one-shot forward sequence.
//
// Each Take eagerly pulls up to n items into a newly allocated batch, so
// this variant costs one allocation per batch. Use FromSlice when the
// items are already materialized.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	next, stop := iter.Pull(seq)
	return &seqSource[T]{next: next, stop: stop}
}

func (s *seqSource[T]) Take(n int) ([]T, bool) {
	if s.done {
		return nil, true
	}

	batch := make([]T, 0, n)
	for len(batch) < n {
		item, ok := s.next()
		if !ok {
			// The sequence ran out before satisfying the request.
			s.done = true
			s.stop()
			break
		}
		batch = append(batch, item)
	}

	return batch, s.done
}
