package series

import "sync"

// Point is a single sample of a simulated measurement. X and Y are
// technique-dependent: potential/current for voltammetric and pulse
// techniques, Z'/-Z'' for impedance, time/current for chronometric.
// Z holds the excitation frequency in Hz and Phase the phase angle in
// degrees; both are set for impedance points only. Time is the
// simulated time in seconds at which the point was generated.
type Point struct {
	X     float64
	Y     float64
	Z     float64
	Phase float64
	Time  float64
}

// Series is an append-only, insertion-ordered sequence of points.
// Points are never rewritten in place, so a snapshot taken mid-run is
// always internally consistent. The simulation controller is the only
// writer; readers take copy snapshots and may do so concurrently.
type Series struct {
	mu  sync.RWMutex
	pts []Point
}

func New() *Series {
	return &Series{}
}

func (s *Series) Append(p Point) {
	s.mu.Lock()
	s.pts = append(s.pts, p)
	s.mu.Unlock()
}

func (s *Series) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pts)
}

// Snapshot returns a copy of the current contents, safe to read while
// the simulation keeps appending.
func (s *Series) Snapshot() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Point, len(s.pts))
	copy(out, s.pts)
	return out
}

// Reset discards all points. Capacity is retained for the next run.
func (s *Series) Reset() {
	s.mu.Lock()
	s.pts = s.pts[:0]
	s.mu.Unlock()
}
