package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Speech speechmodel.SpeechConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Speech: speech}, nil
}

func loadSpeechConfig() (speechmodel.SpeechConfig, error) {
	// 解析超时设置
	timeout, err := parseOptionalIntEnv("SPEECH_TIMEOUT")
	if err != nil {
		return speechmodel.SpeechConfig{}, err
	}
	timeoutSeconds := 30 // 默认30秒
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	appID := strings.TrimSpace(os.Getenv("SPEECH_APP_ID"))
	secretID := strings.TrimSpace(os.Getenv("SPEECH_SECRET_ID"))
	secretKey := strings.TrimSpace(os.Getenv("SPEECH_SECRET_KEY"))

	enabled := appID != "" && secretID != "" && secretKey != ""

	return speechmodel.SpeechConfig{
		AppID:       appID,
		SecretID:    secretID,
		SecretKey:   secretKey,
		Region:      getEnvOrDefault("SPEECH_REGION", "ap-shanghai"),
		EngineModel: getEnvOrDefault("SPEECH_ENGINE_MODEL", "16k_zh"),
		Timeout:     timeoutSeconds,
		Enabled:     enabled,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
