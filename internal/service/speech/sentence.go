package speech

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

// 一句话识别音频上限 60 秒，16k PCM 约 1.9MB。
const maxSentenceAudioBytes = 3 * 1024 * 1024

type sentenceRequest struct {
	EngSerViceType string `json:"EngSerViceType"`
	SourceType     int    `json:"SourceType"`
	VoiceFormat    string `json:"VoiceFormat"`
	UsrAudioKey    string `json:"UsrAudioKey"`
	Data           string `json:"Data"`
	DataLen        int    `json:"DataLen"`
	FilterDirty    int    `json:"FilterDirty"`
	FilterModal    int    `json:"FilterModal"`
	FilterPunc     int    `json:"FilterPunc"`
	ConvertNumMode int    `json:"ConvertNumMode"`
	WordInfo       int    `json:"WordInfo"`
}

type sentenceResponse struct {
	Response struct {
		RequestID string `json:"RequestId"`
		Result    string `json:"Result"`
		AudioTime int64  `json:"AudioTime"`
	} `json:"Response"`
}

// RecognizeSentence 一句话识别：整段短音频单次请求，同步返回文本。
// UsrAudioKey 每次请求独立生成，用于服务端去重与问题排查。
func (s *Service) RecognizeSentence(ctx context.Context, audio []byte, cfg *speechmodel.RecognitionConfig) (*speechmodel.SentenceResult, error) {
	if len(audio) == 0 {
		return nil, &ConfigError{Reason: "音频数据为空"}
	}
	if len(audio) > maxSentenceAudioBytes {
		return nil, &ConfigError{Reason: "音频超过一句话识别上限"}
	}
	cfg, err := s.normalize(cfg)
	if err != nil {
		return nil, err
	}

	req := sentenceRequest{
		EngSerViceType: cfg.EngineModelType,
		SourceType:     1,
		VoiceFormat:    cfg.VoiceFormatName(),
		UsrAudioKey:    uuid.NewString(),
		Data:           base64.StdEncoding.EncodeToString(audio),
		DataLen:        len(audio),
		FilterDirty:    cfg.FilterDirty,
		FilterModal:    cfg.FilterModal,
		FilterPunc:     cfg.FilterPunc,
		ConvertNumMode: cfg.ConvertNumMode,
		WordInfo:       cfg.WordInfo,
	}

	var resp sentenceResponse
	if err := s.rest.do(ctx, "SentenceRecognition", req, &resp); err != nil {
		return nil, err
	}
	return &speechmodel.SentenceResult{
		Text:      resp.Response.Result,
		AudioTime: resp.Response.AudioTime,
		RequestID: resp.Response.RequestID,
	}, nil
}
