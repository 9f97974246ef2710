// services/config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"lostwheel-go/bus"
)

func TestPublishEmbedded_RetainedPerKey(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "bench" {
			return nil, false
		}
		return []byte(`{
			"wheel": {"mode": "interval", "sensor_pin": 16},
			"debug": true
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "bench")
	svc.Start(ctx, conn)

	// Subscribe after publish; retained delivery must still hand us both keys.
	sub := conn.Subscribe(bus.T(configPrefix, "#"))
	defer conn.Unsubscribe(sub)

	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < 2 && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if len(m.Topic) != 2 || m.Topic[0] != configPrefix {
				t.Fatalf("unexpected topic: %v", m.Topic)
			}
			got[m.Topic[1]] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 retained messages, got %d (%v)", len(got), got)
	}

	wheel, ok := got["wheel"].(map[string]any)
	if !ok {
		t.Fatalf("wheel payload type = %T, want map[string]any", got["wheel"])
	}
	if mode, _ := wheel["mode"].(string); mode != "interval" {
		t.Errorf("wheel.mode = %#v, want \"interval\"", wheel["mode"])
	}
	if dbg, ok := got["debug"].(bool); !ok || !dbg {
		t.Errorf("debug payload = %#v, want true", got["debug"])
	}
}

func TestEmbeddedProfilesDecode(t *testing.T) {
	for _, device := range []string{"lostwheel-interval", "lostwheel-cumulative"} {
		b := bus.NewBus(4)
		conn := b.NewConnection("test-" + device)
		svc := NewConfigService()
		ctx := context.WithValue(context.Background(), CtxDeviceKey, device)
		if err := svc.publishConfig(ctx, conn); err != nil {
			t.Errorf("%s: %v", device, err)
		}
	}
}

func TestMissingDevice(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-device")
	svc := NewConfigService()

	if err := svc.publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing device ID, got nil")
	}
}

func TestNoConfigFound(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-no-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "unknown-device")
	if err := svc.publishConfig(ctx, conn); err == nil {
		t.Fatal("expected error for missing embedded config, got nil")
	}
}
