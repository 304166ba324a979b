package decompress

// Limits bounds the resources a single measurement may consume.
// The zero value imposes no bounds.
type Limits struct {
	// MaxDepth is the deepest marker nesting the recursive rule will descend.
	// Each level costs one stack frame and at least five bytes of input, so
	// memory stays proportional to the input even without a cap. Zero or
	// negative means no cap.
	MaxDepth int
}

// allows reports whether a marker at nesting depth may have its data region
// descended.
func (l Limits) allows(depth int) bool {
	return l.MaxDepth <= 0 || depth <= l.MaxDepth
}
