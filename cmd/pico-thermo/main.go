//go:build rp2040

// Command pico-thermo runs the temperature sensor handler on a Pico and
// logs to uart0.
package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"thermosense-go/bus"
	"thermosense-go/services/config"
	"thermosense-go/services/thermo"
	"thermosense-go/types"
	"thermosense-go/x/fmtx"
	"thermosense-go/x/logx"
	"thermosense-go/x/timex"

	_ "thermosense-go/services/thermo/devices/dallas"
	_ "thermosense-go/services/thermo/devices/tsic"
)

// Selects the embedded config; override with -ldflags "-X main.device=pico-tsic".
var device = "pico"

func main() {
	// Allow the console to settle before we print.
	time.Sleep(2 * time.Second)

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	fmtx.DefaultOutput = u
	log := logx.New(u, logx.LevelInfo)
	log.Infof("boot %s", device)

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, device)
	b := bus.NewBus(4)

	_ = thermo.NewService(timex.NewUptime(), log.With("thermo")).Start(ctx, b.NewConnection("thermo"))
	config.NewConfigService(log.With("config")).Start(ctx, b.NewConnection("config"))

	states := b.NewConnection("console").Subscribe(thermo.StateTopic())
	for m := range states.Channel() {
		if st, ok := m.Payload.(types.ThermoState); ok {
			log.Infof("%.2f C rate %.2f fault=%t", st.TempC, st.ChangeRate, st.FaultConfirmed)
		}
	}
}
