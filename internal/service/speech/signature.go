package speech

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// REST 签名常量。
const (
	signAlgorithm   = "TC3-HMAC-SHA256"
	signScopeSuffix = "tc3_request"
	restService     = "asr"
)

// SignatureContext 单次签名使用的时间上下文。
// 时间戳与日期必须派生自同一 UTC 时刻：日期分量混入本地时区会使
// 凭证范围与 x-tc-timestamp 脱节，服务端直接判定鉴权失败。
type SignatureContext struct {
	Timestamp int64  // UTC 秒
	Date      string // YYYY-MM-DD，由 Timestamp 以 UTC 推导
}

// NewSignatureContext 从给定时刻构造签名上下文，日期分量固定取 UTC。
func NewSignatureContext(now time.Time) SignatureContext {
	utc := now.UTC()
	return SignatureContext{
		Timestamp: utc.Unix(),
		Date:      utc.Format("2006-01-02"),
	}
}

// WebSocketSignature 实时识别连接串签名：base64(HMAC-SHA1(secretKey, secretID+timestamp))。
// 结果可能含 + / =，拼入 URL 前必须百分号编码。
func WebSocketSignature(secretID, secretKey string, timestamp int64) string {
	mac := hmac.New(sha1.New, []byte(secretKey))
	mac.Write([]byte(secretID + strconv.FormatInt(timestamp, 10)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// canonicalHeaders 把固定头集合整理为按名字典序排列的规范头块与签名头名列表。
// 头名小写、取值去除首尾空白；输出与调用方的插入顺序无关。
func canonicalHeaders(headers map[string]string) (block string, signed string) {
	lowered := make(map[string]string, len(headers))
	names := make([]string, 0, len(headers))
	for name, value := range headers {
		key := strings.ToLower(strings.TrimSpace(name))
		lowered[key] = strings.TrimSpace(value)
		names = append(names, key)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(lowered[name])
		b.WriteByte('\n')
	}
	return b.String(), strings.Join(names, ";")
}

// buildCanonicalRequest 构造 REST 签名第一步的规范请求串。
// 全部参数走 JSON 请求体，查询串恒为空。
func buildCanonicalRequest(method, path string, headers map[string]string, body []byte) (request string, signed string) {
	block, signed := canonicalHeaders(headers)
	request = strings.ToUpper(method) + "\n" +
		path + "\n" +
		"\n" +
		block + "\n" +
		signed + "\n" +
		sha256Hex(body)
	return request, signed
}

// Authorization 组装 REST 请求的 Authorization 头（四段式 HMAC-SHA256 签名）。
func Authorization(secretID, secretKey string, sc SignatureContext, headers map[string]string, body []byte) string {
	canonical, signed := buildCanonicalRequest(http.MethodPost, "/", headers, body)

	scope := sc.Date + "/" + restService + "/" + signScopeSuffix
	stringToSign := signAlgorithm + "\n" +
		strconv.FormatInt(sc.Timestamp, 10) + "\n" +
		scope + "\n" +
		sha256Hex([]byte(canonical))

	// 派生签名密钥：每一步的原始输出作为下一步的密钥。
	keyDate := hmacSHA256([]byte("TC3"+secretKey), sc.Date)
	keyService := hmacSHA256(keyDate, restService)
	keySigning := hmacSHA256(keyService, signScopeSuffix)
	signature := hex.EncodeToString(hmacSHA256(keySigning, stringToSign))

	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		signAlgorithm, secretID, scope, signed, signature)
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, message string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return mac.Sum(nil)
}
