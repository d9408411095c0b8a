package speech

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// 连接建立参数。
const (
	dialHandshakeTimeout = 10 * time.Second
	dialMaxRetries       = 2
	dialRetryBase        = 500 * time.Millisecond
)

// dialWithRetry 建立到识别服务端的 WebSocket 连接，失败时做有限次线性退避重试。
// 鉴权失败(401)不重试，立即返回。
func dialWithRetry(ctx context.Context, url string) (*websocket.Conn, error) {
	dialer := &websocket.Dialer{
		HandshakeTimeout: dialHandshakeTimeout,
	}

	var lastErr error
	for i := 0; i <= dialMaxRetries; i++ {
		conn, resp, err := dialer.DialContext(ctx, url, nil)
		if err == nil {
			return conn, nil
		}

		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, &TransportError{Op: "dial", Err: fmt.Errorf("鉴权失败(401)，请检查签名与密钥: %w", err)}
		}

		lastErr = err
		if i == dialMaxRetries {
			break
		}

		backoff := time.Duration(i+1) * dialRetryBase
		select {
		case <-ctx.Done():
			return nil, &TransportError{Op: "dial", Err: ctx.Err()}
		case <-time.After(backoff):
		}
	}

	return nil, &TransportError{Op: "dial", Err: fmt.Errorf("连接失败(重试%d次后放弃): %w", dialMaxRetries, lastErr)}
}
