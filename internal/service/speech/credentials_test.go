package speech

import (
	"errors"
	"strings"
	"testing"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

func testSpeechConfig() *speechmodel.SpeechConfig {
	return &speechmodel.SpeechConfig{
		AppID:     "1259228442",
		SecretID:  testSecretID,
		SecretKey: testSecretKey,
		Region:    "ap-shanghai",
	}
}

func TestResolveCredentials(t *testing.T) {
	cfg := testSpeechConfig()
	cfg.SecretID = "  " + cfg.SecretID + "\n"

	creds, err := resolveCredentials(cfg)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if creds.SecretID != testSecretID {
		t.Fatalf("expected trimmed secret id, got %q", creds.SecretID)
	}
	if creds.Region != "ap-shanghai" {
		t.Fatalf("expected region ap-shanghai, got %s", creds.Region)
	}
}

func TestResolveCredentialsDefaultRegion(t *testing.T) {
	cfg := testSpeechConfig()
	cfg.Region = ""

	creds, err := resolveCredentials(cfg)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if creds.Region != "ap-shanghai" {
		t.Fatalf("expected default region, got %s", creds.Region)
	}
}

func TestResolveCredentialsMissing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*speechmodel.SpeechConfig)
	}{
		{"missing app id", func(c *speechmodel.SpeechConfig) { c.AppID = "" }},
		{"missing secret id", func(c *speechmodel.SpeechConfig) { c.SecretID = "" }},
		{"missing secret key", func(c *speechmodel.SpeechConfig) { c.SecretKey = "  " }},
	}

	for _, tt := range tests {
		cfg := testSpeechConfig()
		tt.mutate(cfg)

		_, err := resolveCredentials(cfg)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("%s: expected ConfigError, got %v", tt.name, err)
		}
	}
}

func TestResolveCredentialsNilConfig(t *testing.T) {
	_, err := resolveCredentials(nil)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestRedactedNeverContainsSecretKey(t *testing.T) {
	creds, err := resolveCredentials(testSpeechConfig())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	redacted := creds.Redacted()
	if strings.Contains(redacted, testSecretKey) {
		t.Fatalf("redacted form leaks secret key: %s", redacted)
	}
	if strings.Contains(redacted, testSecretID) {
		t.Fatalf("redacted form leaks full secret id: %s", redacted)
	}
	if !strings.Contains(redacted, testSecretID[:8]) {
		t.Fatalf("expected secret id prefix in redacted form, got %s", redacted)
	}
}
