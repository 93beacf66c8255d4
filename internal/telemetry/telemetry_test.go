package telemetry

import (
	"context"
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		ServiceName:    "hexorders-test",
		ServiceVersion: "0.0.1",
		Environment:    "test",
		EnableTracing:  true,
		EnableMetrics:  true,
		SampleRate:     1.0,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing service name",
			mutate:  func(c *Config) { c.ServiceName = "" },
			wantErr: ErrMissingServiceName,
		},
		{
			name:    "negative sample rate",
			mutate:  func(c *Config) { c.SampleRate = -0.1 },
			wantErr: ErrInvalidSampleRate,
		},
		{
			name:    "sample rate above one",
			mutate:  func(c *Config) { c.SampleRate = 1.1 },
			wantErr: ErrInvalidSampleRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want wrapped %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestSetupRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.ServiceName = ""

	if _, err := Setup(context.Background(), cfg); !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("Setup() error = %v, want %v", err, ErrMissingServiceName)
	}
}

func TestSetupAndShutdown(t *testing.T) {
	ctx := context.Background()

	tel, err := Setup(ctx, validConfig(),
		WithTraceExporter(NewNoopTraceExporter()),
		WithMetricExporter(NewNoopMetricExporter()),
	)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	if tel.TracerProvider() == nil {
		t.Error("expected tracer provider when tracing is enabled")
	}
	if tel.MeterProvider() == nil {
		t.Error("expected meter provider when metrics are enabled")
	}

	if err := tel.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

func TestSetupWithSignalsDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := validConfig()
	cfg.EnableTracing = false
	cfg.EnableMetrics = false

	tel, err := Setup(ctx, cfg)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	if tel.TracerProvider() != nil {
		t.Error("expected no tracer provider when tracing is disabled")
	}
	if tel.MeterProvider() != nil {
		t.Error("expected no meter provider when metrics are disabled")
	}

	if err := tel.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}
