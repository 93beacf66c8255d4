package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HTTP.Port != defaultHTTPPort {
		t.Errorf("port = %d, want %d", cfg.HTTP.Port, defaultHTTPPort)
	}
	if cfg.Storage.Backend != StorageBackendMemory {
		t.Errorf("storage backend = %s, want %s", cfg.Storage.Backend, StorageBackendMemory)
	}
	if cfg.Events.Backend != EventsBackendLog {
		t.Errorf("events backend = %s, want %s", cfg.Events.Backend, EventsBackendLog)
	}
	if len(cfg.Stock.Levels) != 0 {
		t.Errorf("stock levels = %v, want empty", cfg.Stock.Levels)
	}
}

func TestLoadStockLevels(t *testing.T) {
	t.Setenv("STOCK_LEVELS", "SKU-1=10, SKU-2=0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Stock.Levels["SKU-1"] != 10 {
		t.Errorf("SKU-1 = %d, want 10", cfg.Stock.Levels["SKU-1"])
	}
	if qty, ok := cfg.Stock.Levels["SKU-2"]; !ok || qty != 0 {
		t.Errorf("SKU-2 = %d (present=%v), want 0", qty, ok)
	}
}

func TestLoadInvalidStockLevels(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"missing quantity", "SKU-1"},
		{"negative quantity", "SKU-1=-1"},
		{"non-numeric quantity", "SKU-1=lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STOCK_LEVELS", tt.value)
			if _, err := Load(); err == nil {
				t.Error("expected error for invalid STOCK_LEVELS")
			}
		})
	}
}

func TestLoadInvalidBackends(t *testing.T) {
	t.Run("unknown storage backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "filesystem")
		if _, err := Load(); err == nil {
			t.Error("expected error for invalid STORAGE_BACKEND")
		}
	})

	t.Run("kafka without brokers", func(t *testing.T) {
		t.Setenv("EVENTS_BACKEND", "kafka")
		if _, err := Load(); err == nil {
			t.Error("expected error for kafka backend without brokers")
		}
	})
}
