package speech

import (
	"errors"
	"testing"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

func TestNewServiceMissingCredentials(t *testing.T) {
	cfg := testSpeechConfig()
	cfg.SecretKey = ""

	_, err := NewService(cfg, nil)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestNormalizeNilUsesDefaults(t *testing.T) {
	svc, err := NewService(testSpeechConfig(), nil)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	cfg, err := svc.normalize(nil)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cfg.EngineModelType != "16k_zh" {
		t.Fatalf("expected default engine, got %s", cfg.EngineModelType)
	}
	if cfg.VoiceFormat != speechmodel.FormatPCM {
		t.Fatalf("expected pcm format, got %d", cfg.VoiceFormat)
	}
}

func TestNormalizeFillsEngineFromServiceConfig(t *testing.T) {
	speechCfg := testSpeechConfig()
	speechCfg.EngineModel = "16k_en"
	svc, err := NewService(speechCfg, nil)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	cfg, err := svc.normalize(&speechmodel.RecognitionConfig{VoiceFormat: speechmodel.FormatWAV})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cfg.EngineModelType != "16k_en" {
		t.Fatalf("expected engine 16k_en from service config, got %s", cfg.EngineModelType)
	}
	if cfg.VoiceFormat != speechmodel.FormatWAV {
		t.Fatalf("expected caller format kept, got %d", cfg.VoiceFormat)
	}
}

func TestNormalizeDoesNotMutateCaller(t *testing.T) {
	svc, err := NewService(testSpeechConfig(), nil)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	in := &speechmodel.RecognitionConfig{EngineModelType: ""}
	out, err := svc.normalize(in)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if out == in {
		t.Fatalf("expected independent copy")
	}
	if in.EngineModelType != "" {
		t.Fatalf("caller config mutated: %s", in.EngineModelType)
	}
}

func TestNormalizeInvalidConfig(t *testing.T) {
	svc, err := NewService(testSpeechConfig(), nil)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	_, err = svc.normalize(&speechmodel.RecognitionConfig{
		EngineModelType: "16k_zh",
		VoiceFormat:     speechmodel.FormatPCM,
		ConvertNumMode:  2,
	})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for invalid options, got %v", err)
	}
}
