package thermo

import "thermosense-go/x/timex"

// HistorySize is the number of slots in the rate window.
const HistorySize = 15

const (
	slotRateScale      = 10000
	aggregateRateScale = 100
)

type slot struct {
	tempC float64
	tsMs  uint32
	rate  float64
}

// Smoother keeps the rolling change-rate window and the one-step-lag
// deviation reference.
type Smoother struct {
	slots      [HistorySize]slot
	cursor     int
	primed     bool
	changeRate float32

	prevC  float32
	hasRef bool
}

// Track moves the deviation reference for an accepted reading. current is
// the temperature before the reading; next is the reading itself. The very
// first reading references itself.
func (s *Smoother) Track(current, next float32) {
	if s.hasRef {
		s.prevC = current
		return
	}
	s.hasRef = true
	s.prevC = next
}

// Reference returns the deviation reference and whether any reading has
// been accepted yet.
func (s *Smoother) Reference() (float32, bool) { return s.prevC, s.hasRef }

// Update stores tempC at the cursor and returns the new aggregate rate.
//
// The slot rate pairs the cursor with the slot written next (slot 0 for the
// last slot), i.e. the oldest sample in the window. The aggregate is the
// mean of all slot rates, including ones left from earlier laps.
func (s *Smoother) Update(tempC float32, now uint32) float32 {
	if !s.primed {
		for i := range s.slots {
			s.slots[i] = slot{tempC: float64(tempC)}
		}
		s.primed = true
	}

	cur := &s.slots[s.cursor]
	cur.tempC = float64(tempC)
	cur.tsMs = now

	next := 0
	if s.cursor < HistorySize-1 {
		next = s.cursor + 1
	}
	old := s.slots[next]
	cur.rate = 0
	// Two updates within the same millisecond leave the slot at zero.
	if dt := timex.Since(cur.tsMs, old.tsMs); dt != 0 {
		cur.rate = (cur.tempC - old.tempC) / float64(dt) * slotRateScale
	}

	var sum float64
	for _, sl := range s.slots {
		sum += sl.rate
	}
	s.changeRate = float32(sum / HistorySize * aggregateRateScale)

	s.cursor++
	if s.cursor >= HistorySize {
		s.cursor = 0
	}
	return s.changeRate
}

func (s *Smoother) ChangeRate() float32 { return s.changeRate }

// Cursor is the slot the next Update writes.
func (s *Smoother) Cursor() int { return s.cursor }
