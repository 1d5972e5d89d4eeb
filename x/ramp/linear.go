// Package ramp describes piecewise-linear temperature profiles.
package ramp

// Segment moves linearly from From to To over Ms milliseconds.
// Ms == 0 snaps to To.
type Segment struct {
	From, To float32
	Ms       uint32
}

// Hold stays at c for ms.
func Hold(c float32, ms uint32) Segment { return Segment{From: c, To: c, Ms: ms} }

// Linear moves from one value to another over ms.
func Linear(from, to float32, ms uint32) Segment { return Segment{From: from, To: to, Ms: ms} }

// Profile chains segments. The last value holds after the final segment.
type Profile []Segment

// At returns the profile value ms after its start.
func (p Profile) At(ms uint32) float32 {
	if len(p) == 0 {
		return 0
	}
	for _, s := range p {
		if ms < s.Ms {
			return s.From + (s.To-s.From)*float32(ms)/float32(s.Ms)
		}
		ms -= s.Ms
	}
	return p[len(p)-1].To
}

// Duration is the total length in ms.
func (p Profile) Duration() uint32 {
	var d uint32
	for _, s := range p {
		d += s.Ms
	}
	return d
}
