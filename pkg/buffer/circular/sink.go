package circular

// Sink receives items removed by DrainTo and DrainToN, oldest first.
type Sink[T any] interface {
	Add(item T)
}

// SinkFunc adapts a function to Sink.
type SinkFunc[T any] func(item T)

// Add calls f(item).
func (f SinkFunc[T]) Add(item T) { f(item) }

// SliceSink appends every item it receives to Items.
type SliceSink[T any] struct {
	Items []T
}

// Add appends item.
func (s *SliceSink[T]) Add(item T) {
	s.Items = append(s.Items, item)
}
