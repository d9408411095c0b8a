package speech

import (
	"fmt"
	"strings"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

// Credentials 长期有效的 API 密钥对与账号标识，进程生命周期内不可变。
// 所有签名均以它为输入；完整内容绝不写入日志，见 Redacted。
type Credentials struct {
	AppID     string
	SecretID  string
	SecretKey string
	Region    string
}

// resolveCredentials 返回规范化后的凭证，缺失时给出明确错误。
func resolveCredentials(cfg *speechmodel.SpeechConfig) (Credentials, error) {
	if cfg == nil {
		return Credentials{}, &ConfigError{Reason: "语音配置未初始化"}
	}

	creds := Credentials{
		AppID:     strings.TrimSpace(cfg.AppID),
		SecretID:  strings.TrimSpace(cfg.SecretID),
		SecretKey: strings.TrimSpace(cfg.SecretKey),
		Region:    strings.TrimSpace(cfg.Region),
	}

	if creds.AppID == "" {
		return Credentials{}, &ConfigError{Reason: "缺少 AppID"}
	}
	if creds.SecretID == "" || creds.SecretKey == "" {
		return Credentials{}, &ConfigError{Reason: "缺少 SecretId 或 SecretKey"}
	}
	if creds.Region == "" {
		creds.Region = "ap-shanghai"
	}

	return creds, nil
}

// Redacted 返回可安全写入日志的凭证形式，密钥只保留前缀。
func (c Credentials) Redacted() string {
	return fmt.Sprintf("appid=%s secretid=%s", c.AppID, redactKey(c.SecretID))
}

func redactKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:8] + "****"
}
