package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

// REST 接入点与接口版本。
const (
	defaultRESTEndpoint = "https://asr.tencentcloudapi.com"
	restAPIVersion      = "2019-06-14"
	defaultRESTTimeout  = 30 * time.Second
)

// restClient 已签名的 REST 调用通道，一次识别服务一个实例。
type restClient struct {
	creds    Credentials
	endpoint string
	client   *http.Client
	now      func() time.Time
}

func newRESTClient(creds Credentials) *restClient {
	return &restClient{
		creds:    creds,
		endpoint: defaultRESTEndpoint,
		client:   &http.Client{Timeout: defaultRESTTimeout},
		now:      time.Now,
	}
}

// responseEnvelope 云端统一响应外层。
type responseEnvelope struct {
	Response struct {
		RequestID string `json:"RequestId"`
		Error     *struct {
			Code    string `json:"Code"`
			Message string `json:"Message"`
		} `json:"Error"`
	} `json:"Response"`
}

// do 发起一次已签名的云端调用，把 Response 体反序列化到 out。
// out 为 nil 时只做错误检查。
func (c *restClient) do(ctx context.Context, action string, payload, out any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化请求体失败: %w", err)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return &ConfigError{Reason: "非法的识别服务地址: " + c.endpoint}
	}

	sc := NewSignatureContext(c.now())
	headers := map[string]string{
		"content-type":   "application/json",
		"host":           u.Host,
		"x-tc-action":    action,
		"x-tc-region":    c.creds.Region,
		"x-tc-timestamp": strconv.FormatInt(sc.Timestamp, 10),
		"x-tc-version":   restAPIVersion,
	}
	auth := Authorization(c.creds.SecretID, c.creds.SecretKey, sc, headers, body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: action, Err: err}
	}
	for k, v := range headers {
		if k == "host" {
			continue
		}
		req.Header.Set(k, v)
	}
	req.Header.Set("Authorization", auth)

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: action, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: action, Err: err}
	}

	var envelope responseEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return &TransportError{Op: action, Err: fmt.Errorf("解析响应失败: %w", err)}
	}
	if e := envelope.Response.Error; e != nil {
		return &ProviderError{
			Code:      e.Code,
			Message:   e.Message,
			RequestID: envelope.Response.RequestID,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return &TransportError{Op: action, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out != nil {
		if err := sonic.Unmarshal(raw, out); err != nil {
			return &TransportError{Op: action, Err: fmt.Errorf("解析响应失败: %w", err)}
		}
	}
	return nil
}
