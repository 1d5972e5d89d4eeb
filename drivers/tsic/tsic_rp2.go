//go:build rp2040

package tsic

import (
	"machine"
	"runtime/interrupt"
	"time"
)

var boot = time.Now()

func micros() uint32 { return uint32(time.Since(boot).Microseconds()) }

type rp2Line machine.Pin

func (p rp2Line) ConfigurePulldown() {
	machine.Pin(p).Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
}

func (p rp2Line) Get() bool { return machine.Pin(p).Get() }

func (p rp2Line) OnToggle(fn func(high bool)) error {
	return machine.Pin(p).SetInterrupt(machine.PinToggle, func(q machine.Pin) { fn(q.Get()) })
}

// Attach listens for frames on pin and reports whether a sensor drives it.
func Attach(pin machine.Pin) (*Device, bool) {
	d := New(micros)
	d.guard = func() func() {
		st := interrupt.Disable()
		return func() { interrupt.Restore(st) }
	}
	return d, d.Listen(rp2Line(pin))
}
