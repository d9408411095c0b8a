package speech

import (
	"context"
	"math/rand"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

// 实时识别接入点与连接串有效期。
const (
	defaultStreamBase = "wss://asr.cloud.tencent.com"
	streamPathPrefix  = "/asr/v2/"
	signatureLifetime = 86400 // 秒，连接串过期时间 = timestamp + 24h
)

// SessionState 实时识别会话状态。
type SessionState int32

const (
	StateInit SessionState = iota
	StateStreaming
	StateFinalized
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateStreaming:
		return "STREAMING"
	case StateFinalized:
		return "FINALIZED"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// RealtimeSession 一条到识别服务端的实时 WebSocket 会话。
//
// 状态机: INIT → STREAMING → FINALIZED → CLOSED，错误或 Close 直达 CLOSED。
// 首帧 seq、末帧标记等序列状态都是结构体字段而不是闭包变量；
// 一条会话只允许一个逻辑发送方驱动，多条会话之间互不共享可变状态。
//
// 结果与终止事件分两条通道投递：Results 按服务端下发顺序透传识别结果，
// Done 精确一次地给出终止原因（nil 表示正常完成或主动关闭）。
type RealtimeSession struct {
	voiceID string
	format  int
	conn    *websocket.Conn
	logger  *zap.Logger

	mu        sync.Mutex
	state     SessionState
	firstSent bool
	finalized bool // 服务端已下发 final 结果
	closed    bool // 调用方已显式 Close

	results   chan *speechmodel.RecognitionResult
	done      chan error
	quit      chan struct{}
	termOnce  sync.Once
	closeOnce sync.Once
}

// CreateRealtimeSession 建立一条实时识别会话并启动接收循环。
// 连接串在此签名，voice_id 使用本端生成的关联 ID。
func (s *Service) CreateRealtimeSession(ctx context.Context, cfg *speechmodel.RecognitionConfig) (*RealtimeSession, error) {
	cfg, err := s.normalize(cfg)
	if err != nil {
		return nil, err
	}

	sc := NewSignatureContext(time.Now())
	wsURL := buildStreamURL(s.streamBase, s.creds, cfg, sc)

	conn, err := dialWithRetry(ctx, wsURL)
	if err != nil {
		return nil, err
	}

	sess := &RealtimeSession{
		voiceID: uuid.NewString(),
		format:  cfg.VoiceFormat,
		conn:    conn,
		logger:  s.logger,
		state:   StateInit,
		results: make(chan *speechmodel.RecognitionResult, 16),
		done:    make(chan error, 1),
		quit:    make(chan struct{}),
	}

	s.logger.Debug("实时识别会话已建立",
		zap.String("voiceId", sess.voiceID),
		zap.String("engine", cfg.EngineModelType))

	go sess.readLoop()
	return sess, nil
}

// buildStreamURL 构造带签名的连接串。签名值经 url.Values 百分号编码后拼入。
func buildStreamURL(base string, creds Credentials, cfg *speechmodel.RecognitionConfig, sc SignatureContext) string {
	q := url.Values{}
	q.Set("engine_model_type", cfg.EngineModelType)
	q.Set("voice_format", strconv.Itoa(cfg.VoiceFormat))
	q.Set("needvad", strconv.Itoa(cfg.NeedVAD))
	q.Set("filter_dirty", strconv.Itoa(cfg.FilterDirty))
	q.Set("filter_modal", strconv.Itoa(cfg.FilterModal))
	q.Set("filter_punc", strconv.Itoa(cfg.FilterPunc))
	q.Set("convert_num_mode", strconv.Itoa(cfg.ConvertNumMode))
	q.Set("word_info", strconv.Itoa(cfg.WordInfo))
	if cfg.VadSilenceTime > 0 {
		q.Set("vad_silence_time", strconv.Itoa(cfg.VadSilenceTime))
	}
	if cfg.HotwordID != "" {
		q.Set("hotword_id", cfg.HotwordID)
	}
	if cfg.CustomizationID != "" {
		q.Set("customization_id", cfg.CustomizationID)
	}

	q.Set("secretid", creds.SecretID)
	q.Set("timestamp", strconv.FormatInt(sc.Timestamp, 10))
	q.Set("expired", strconv.FormatInt(sc.Timestamp+signatureLifetime, 10))
	q.Set("nonce", strconv.Itoa(rand.Intn(1_000_000_000)))
	q.Set("signature", WebSocketSignature(creds.SecretID, creds.SecretKey, sc.Timestamp))

	return base + streamPathPrefix + creds.AppID + "?" + q.Encode()
}

// VoiceID 返回本会话的关联 ID。
func (s *RealtimeSession) VoiceID() string { return s.voiceID }

// State 返回当前会话状态。
func (s *RealtimeSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Results 服务端识别结果，按下发顺序透传；会话终止时通道关闭。
func (s *RealtimeSession) Results() <-chan *speechmodel.RecognitionResult {
	return s.results
}

// Done 终止事件，精确一次：nil 表示正常完成或主动关闭，否则为终止错误。
func (s *RealtimeSession) Done() <-chan error {
	return s.done
}

// Send 发送一帧音频。首帧 seq=0，其后恒为 seq=1：服务端协议只区分
// 首帧与后续帧，不要求逐帧递增。Close 之后调用返回 ErrSessionClosed。
func (s *RealtimeSession) Send(chunk []byte, isEnd bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return ErrSessionClosed
	}

	seq := 0
	if s.firstSent {
		seq = 1
	}

	data, err := encodeAudioFrame(s.voiceID, seq, isEnd, s.format, chunk)
	if err != nil {
		return err
	}

	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return &TransportError{Op: "send", Err: err}
	}

	s.firstSent = true
	if s.state == StateInit {
		s.state = StateStreaming
	}
	return nil
}

// Close 关闭会话。幂等，任意状态下可调，之后 Send 一律报错。
// 只在连接尚存时发送传输层关闭帧；终止事件仍然只投递一次。
func (s *RealtimeSession) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.state = StateClosed
		s.mu.Unlock()

		close(s.quit)
		deadline := time.Now().Add(time.Second)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = s.conn.Close()
	})
	return nil
}

// readLoop 接收循环：解复用服务端消息，把结果按到达顺序交给调用方。
func (s *RealtimeSession) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			normal := s.closed || s.finalized
			s.mu.Unlock()
			if normal {
				// final 之后或主动 Close 之后的断开是正常的流结束
				s.terminate(nil)
			} else {
				s.terminate(&TransportError{Op: "read", Err: err})
			}
			return
		}

		msg, err := decodeServerMessage(data)
		if err != nil {
			s.terminate(&TransportError{Op: "decode", Err: err})
			return
		}

		if msg.Code != 0 {
			// 服务端结构化错误：错误码原样上抛，不进入 FINALIZED
			s.terminate(&ProviderError{
				Code:    strconv.Itoa(msg.Code),
				Message: msg.Message,
			})
			return
		}

		result := msg.toResult()
		if result.IsFinal {
			s.mu.Lock()
			s.finalized = true
			if s.state != StateClosed {
				s.state = StateFinalized
			}
			s.mu.Unlock()
		}

		select {
		case s.results <- result:
		case <-s.quit:
			s.terminate(nil)
			return
		}
	}
}

// terminate 终结会话：状态置 CLOSED，关闭结果通道，精确一次投递终止事件。
func (s *RealtimeSession) terminate(err error) {
	s.termOnce.Do(func() {
		s.mu.Lock()
		s.state = StateClosed
		s.mu.Unlock()

		close(s.results)
		s.done <- err

		if err != nil {
			s.logger.Warn("实时识别会话异常终止",
				zap.String("voiceId", s.voiceID), zap.Error(err))
		}
	})
}
