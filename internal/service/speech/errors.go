package speech

import (
	"errors"
	"fmt"
)

// ErrSessionClosed 会话关闭后继续发送音频时返回。
var ErrSessionClosed = errors.New("识别会话已关闭")

// ConfigError 凭证或参数配置错误。启动期致命，不做重试。
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("语音配置错误: %s", e.Reason)
}

// SignatureError 签名或请求构造失败。正确的代码不应触发，视为程序缺陷上报。
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("签名构造失败: %v", e.Err)
}

func (e *SignatureError) Unwrap() error { return e.Err }

// TransportError 连接或网络层错误。会话随之进入关闭状态，本层不自动重试。
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("语音传输错误(%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError 服务端在成功送达的响应里返回的结构化错误。
// 错误码与消息原样保留，上层按码处理，不做字符串匹配。
type ProviderError struct {
	Code      string
	Message   string
	RequestID string
}

func (e *ProviderError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("识别服务端错误 %s: %s (requestId=%s)", e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("识别服务端错误 %s: %s", e.Code, e.Message)
}
