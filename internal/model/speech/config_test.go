package speech

import "testing"

func TestDefaultRecognitionConfigValid(t *testing.T) {
	cfg := DefaultRecognitionConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.EngineModelType != "16k_zh" {
		t.Fatalf("expected 16k_zh, got %s", cfg.EngineModelType)
	}
	if cfg.VoiceFormat != FormatPCM {
		t.Fatalf("expected pcm format, got %d", cfg.VoiceFormat)
	}
	if cfg.NeedVAD != 1 {
		t.Fatalf("expected vad enabled, got %d", cfg.NeedVAD)
	}
}

func TestRecognitionConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RecognitionConfig)
		wantErr bool
	}{
		{"valid default", func(c *RecognitionConfig) {}, false},
		{"empty engine", func(c *RecognitionConfig) { c.EngineModelType = "" }, true},
		{"unknown format", func(c *RecognitionConfig) { c.VoiceFormat = 99 }, true},
		{"needvad out of range", func(c *RecognitionConfig) { c.NeedVAD = 2 }, true},
		{"filter dirty out of range", func(c *RecognitionConfig) { c.FilterDirty = 3 }, true},
		{"filter modal out of range", func(c *RecognitionConfig) { c.FilterModal = -1 }, true},
		{"filter punc out of range", func(c *RecognitionConfig) { c.FilterPunc = 2 }, true},
		{"convert num mode 2 invalid", func(c *RecognitionConfig) { c.ConvertNumMode = 2 }, true},
		{"convert num mode 3 valid", func(c *RecognitionConfig) { c.ConvertNumMode = 3 }, false},
		{"word info out of range", func(c *RecognitionConfig) { c.WordInfo = 3 }, true},
		{"vad silence below minimum", func(c *RecognitionConfig) { c.VadSilenceTime = 100 }, true},
		{"vad silence in range", func(c *RecognitionConfig) { c.VadSilenceTime = 800 }, false},
		{"vad silence zero", func(c *RecognitionConfig) { c.VadSilenceTime = 0 }, false},
	}

	for _, tt := range tests {
		cfg := DefaultRecognitionConfig()
		tt.mutate(cfg)

		err := cfg.Validate()
		if tt.wantErr && err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestVoiceFormatName(t *testing.T) {
	tests := []struct {
		format int
		want   string
	}{
		{FormatPCM, "pcm"},
		{FormatWAV, "wav"},
		{FormatMP3, "mp3"},
		{99, "pcm"},
	}

	for _, tt := range tests {
		cfg := &RecognitionConfig{VoiceFormat: tt.format}
		if got := cfg.VoiceFormatName(); got != tt.want {
			t.Fatalf("format %d: expected %s, got %s", tt.format, tt.want, got)
		}
	}
}
