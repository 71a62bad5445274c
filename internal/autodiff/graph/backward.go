package graph

import "sync"

// Backward maps a seed cotangent to the gradient of the graph's output with
// respect to each input, scaled by the seed.
//
// A Backward may be called any number of times; each call returns a new
// gradient slice. It reuses an internal adjoint buffer between calls, so it
// must not be called from several goroutines at once. Use Shared for that.
type Backward func(seed float64) []float64

// SharedBackward is a reference to a Backward that may be cloned and called
// from several goroutines at once. Calls are serialised.
type SharedBackward struct {
	mu sync.Mutex
	fn Backward
}

// Shared converts b into its shareable form. The caller must not keep
// calling b directly afterwards.
func (b Backward) Shared() *SharedBackward {
	return &SharedBackward{fn: b}
}

// Call runs the backward procedure with the given seed.
func (s *SharedBackward) Call(seed float64) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn(seed)
}

// Clone returns another reference to the same backward procedure.
func (s *SharedBackward) Clone() *SharedBackward {
	return s
}
