//go:build !rp2040

// Command thermosense runs the sensor pipeline on the host against the
// simulated one-wire sensor and prints every state change.
package main

import (
	"context"
	"os"
	"os/signal"

	"thermosense-go/bus"
	"thermosense-go/services/config"
	"thermosense-go/services/thermo"
	"thermosense-go/types"
	"thermosense-go/x/logx"
	"thermosense-go/x/timex"

	_ "thermosense-go/services/thermo/devices/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	device := os.Getenv("THERMO_DEVICE")
	if device == "" {
		device = "host"
	}
	ctx = context.WithValue(ctx, config.CtxDeviceKey, device)

	log := logx.New(os.Stdout, logx.LevelInfo)
	b := bus.NewBus(8)

	_ = thermo.NewService(timex.NewUptime(), log.With("thermo")).Start(ctx, b.NewConnection("thermo"))
	config.NewConfigService(log.With("config")).Start(ctx, b.NewConnection("config"))

	ui := b.NewConnection("ui")
	defer ui.Disconnect()
	states := ui.Subscribe(thermo.StateTopic())

	for {
		select {
		case <-ctx.Done():
			log.Infof("bye")
			return
		case m := <-states.Channel():
			st, ok := m.Payload.(types.ThermoState)
			if !ok {
				continue
			}
			printState(log, st)
		}
	}
}

func printState(log *logx.Logger, st types.ThermoState) {
	switch {
	case st.FaultConfirmed:
		log.Errorf("%8d ms  %6.2f C  rate %7.2f  FAULT %s", st.TsMs, st.TempC, st.ChangeRate, st.Message)
	case st.FaultActive:
		log.Warnf("%8d ms  %6.2f C  rate %7.2f  suspect: %s", st.TsMs, st.TempC, st.ChangeRate, st.Message)
	default:
		log.Infof("%8d ms  %6.2f C  rate %7.2f", st.TsMs, st.TempC, st.ChangeRate)
	}
}
