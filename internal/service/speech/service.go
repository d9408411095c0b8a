package speech

import (
	"context"
	"time"

	"go.uber.org/zap"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

// Recognizer 语音识别服务对外能力面。
type Recognizer interface {
	CreateRealtimeSession(ctx context.Context, cfg *speechmodel.RecognitionConfig) (*RealtimeSession, error)
	RecognizeAudio(ctx context.Context, audio []byte, cfg *speechmodel.RecognitionConfig) (*speechmodel.FileResult, error)
	RecognizeFile(ctx context.Context, path string, cfg *speechmodel.RecognitionConfig) (*speechmodel.FileResult, error)
	RecognizeSentence(ctx context.Context, audio []byte, cfg *speechmodel.RecognitionConfig) (*speechmodel.SentenceResult, error)
	CreateLongAudioTask(ctx context.Context, audio []byte, cfg *speechmodel.RecognitionConfig) (*speechmodel.LongAudioTask, error)
	CreateLongAudioTaskFromURL(ctx context.Context, audioURL string, cfg *speechmodel.RecognitionConfig) (*speechmodel.LongAudioTask, error)
	DescribeLongAudioTask(ctx context.Context, taskID uint64) (*speechmodel.LongAudioTask, error)
}

var _ Recognizer = (*Service)(nil)

// Service 语音识别服务。凭据在构造时解析一次，之后只读。
type Service struct {
	config     *speechmodel.SpeechConfig
	creds      Credentials
	rest       *restClient
	logger     *zap.Logger
	streamOpts streamOptions
	streamBase string
}

// NewService 创建语音识别服务。凭据缺失时返回 ConfigError。
func NewService(cfg *speechmodel.SpeechConfig, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	creds, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	rest := newRESTClient(creds)
	if cfg.Timeout > 0 {
		rest.client.Timeout = time.Duration(cfg.Timeout) * time.Second
	}

	s := &Service{
		config:     cfg,
		creds:      creds,
		rest:       rest,
		logger:     logger,
		streamOpts: defaultStreamOptions(),
		streamBase: defaultStreamBase,
	}
	logger.Info("语音识别服务已初始化", zap.String("credentials", creds.Redacted()))
	return s, nil
}

// normalize 补全并校验识别参数，返回独立副本，调用方传 nil 时用默认值。
func (s *Service) normalize(cfg *speechmodel.RecognitionConfig) (*speechmodel.RecognitionConfig, error) {
	out := *speechmodel.DefaultRecognitionConfig()
	if cfg != nil {
		out = *cfg
	}
	if out.EngineModelType == "" {
		out.EngineModelType = s.config.EngineModel
	}
	if out.EngineModelType == "" {
		out.EngineModelType = "16k_zh"
	}
	if out.VoiceFormat == 0 {
		out.VoiceFormat = speechmodel.FormatPCM
	}
	if err := out.Validate(); err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}
	return &out, nil
}
