package mono

// SharedBackward is a reference to a Backward that may be cloned and called
// from several goroutines at once.
//
// A chain backward procedure only reads the values captured by its forward
// pass, so sharing needs no locking; the wrapper exists so that handing a
// procedure to concurrent consumers is an explicit step, as it is for graphs.
type SharedBackward struct {
	fn Backward
}

// Shared converts b into its shareable form.
func (b Backward) Shared() *SharedBackward {
	return &SharedBackward{fn: b}
}

// Call runs the backward procedure with the given seed.
func (s *SharedBackward) Call(seed float64) float64 {
	return s.fn(seed)
}

// Clone returns another reference to the same backward procedure.
func (s *SharedBackward) Clone() *SharedBackward {
	return s
}
