package thermo

import (
	"context"
	"time"

	"thermosense-go/bus"
	"thermosense-go/errcode"
	"thermosense-go/types"
	"thermosense-go/x/jsonx"
	"thermosense-go/x/logx"
	"thermosense-go/x/timex"
)

var (
	topicConfigThermo = bus.T("config", "thermo")
	topicThermoState  = bus.T("thermo", "state")
)

// StateTopic carries types.ThermoState, retained.
func StateTopic() bus.Topic { return topicThermoState }

const idlePoll = time.Hour

// Service owns one Handler and drives it from a ticker. The sensor is built
// from the first config/thermo message; later messages retune the limits and
// timings. Only the service goroutine touches the Handler.
type Service struct {
	clock timex.Clock
	log   Logger

	h   *Handler
	cfg types.ThermoConfig
}

// NewService returns an idle service. A nil log discards.
func NewService(clock timex.Clock, log Logger) *Service {
	if log == nil {
		log = logx.Discard
	}
	return &Service{clock: clock, log: log}
}

// Start launches the service loop.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigThermo)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(idlePoll)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Infof("thermo service stopping")
			return
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				return
			}
			if period, err := s.applyConfig(msg.Payload, conn); err != nil {
				s.log.Errorf("thermo config rejected: %s", err.Error())
			} else if period > 0 {
				tick.Reset(period)
			}
		case <-tick.C:
			if s.h != nil {
				s.h.Service()
			}
		}
	}
}

// applyConfig returns the poll period to use, or 0 to keep the current one.
func (s *Service) applyConfig(payload any, conn *bus.Connection) (time.Duration, error) {
	cfg := s.cfg
	if s.h == nil {
		cfg = types.DefaultThermoConfig()
	}
	if err := jsonx.Decode(payload, &cfg); err != nil {
		return 0, errcode.Wrap(errcode.InvalidPayload, "thermo.config", err)
	}
	if cfg.PollMs == 0 {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "thermo.config", Msg: "poll_ms must be > 0"}
	}

	if s.h != nil {
		if cfg.Sensor != s.cfg.Sensor || cfg.Pin != s.cfg.Pin {
			s.log.Warnf("sensor %s on GPIO %d is fixed until restart, ignoring %s on GPIO %d",
				s.cfg.Sensor, s.cfg.Pin, cfg.Sensor, cfg.Pin)
			cfg.Sensor, cfg.Pin = s.cfg.Sensor, s.cfg.Pin
		}
		if err := s.h.Configure(ConfigFrom(cfg)); err != nil {
			return 0, err
		}
		s.cfg = cfg
		return time.Duration(cfg.PollMs) * time.Millisecond, nil
	}

	h, err := New(ConfigFrom(cfg), s.clock, s.log)
	if err != nil {
		return 0, err
	}
	be, err := Build(BuildInput{Kind: cfg.Sensor, Pin: cfg.Pin, Log: s.log})
	if err != nil {
		return 0, err
	}
	if err := h.Init(be); err != nil {
		return 0, err
	}
	h.OnChange(NotifierFunc(func(float32, float32, bool) {
		conn.Publish(conn.NewMessage(topicThermoState, h.Snapshot(), true))
	}))
	s.h, s.cfg = h, cfg
	return time.Duration(cfg.PollMs) * time.Millisecond, nil
}
