package config

import (
	"context"
	"encoding/json"

	"thermosense-go/bus"
	"thermosense-go/errcode"
	"thermosense-go/x/logx"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Logger is the subset of logx.Logger the service uses.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type ConfigService struct {
	Name string
	log  Logger
}

// NewConfigService returns a publisher. A nil log discards.
func NewConfigService(log Logger) *ConfigService {
	if log == nil {
		log = logx.Discard
	}
	return &ConfigService{Name: serviceName, log: log}
}

// publishConfig reads the device config from embedded data and publishes
// each top-level key as a retained message on config/<key>.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.publish", Msg: "missing device ID in context"}
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.publish", Msg: "no embedded config for device: " + device}
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return errcode.Wrap(errcode.InvalidPayload, "config.publish", err)
	}
	if m == nil {
		return &errcode.E{C: errcode.InvalidPayload, Op: "config.publish", Msg: "embedded config is not a JSON object"}
	}

	for k, v := range m {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	s.log.Infof("published %d config keys for %s", len(m), device)
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			s.log.Errorf("config: %s", err.Error())
		}
	}()
}
