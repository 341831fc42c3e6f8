package scene

import "sync"

// Backend accepts a scene append by append. Implementations run transitions
// asynchronously; Append must not block on animation.
type Backend interface {
	Clear()
	Append(Shape)
}

// Recorder is an in-memory Backend. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	clears int
	shapes []Shape
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
	r.shapes = nil
}

func (r *Recorder) Append(s Shape) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shapes = append(r.shapes, s)
}

// Clears is the number of render passes started.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Shapes returns a copy of the current scene.
func (r *Recorder) Shapes() []Shape {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Shape, len(r.shapes))
	copy(out, r.shapes)
	return out
}

// Count returns how many shapes of kind k are in the scene.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.shapes {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// Replay clears b and appends shapes in order.
func Replay(b Backend, shapes []Shape) {
	b.Clear()
	for _, s := range shapes {
		b.Append(s)
	}
}
