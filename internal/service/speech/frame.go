package speech

import (
	"encoding/base64"
	"fmt"

	"github.com/bytedance/sonic"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

// audioFrame 实时识别出站音频帧，逐块构造、发送后即丢弃。
// seq 只区分首帧(0)与后续帧(1)，这是服务端协议的约定而非逐帧计数。
type audioFrame struct {
	VoiceID     string `json:"voice_id"`
	End         int    `json:"end"`
	Seq         int    `json:"seq"`
	VoiceFormat int    `json:"voice_format"`
	Data        string `json:"data"`
}

// encodeAudioFrame 序列化一帧音频为 JSON 文本帧。
func encodeAudioFrame(voiceID string, seq int, isEnd bool, format int, payload []byte) ([]byte, error) {
	frame := audioFrame{
		VoiceID:     voiceID,
		Seq:         seq,
		VoiceFormat: format,
		Data:        base64.StdEncoding.EncodeToString(payload),
	}
	if isEnd {
		frame.End = 1
	}

	data, err := sonic.Marshal(&frame)
	if err != nil {
		return nil, fmt.Errorf("编码音频帧失败: %w", err)
	}
	return data, nil
}

// serverWord 服务端词级时间戳
type serverWord struct {
	Word      string `json:"word"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
}

type serverResult struct {
	VoiceTextStr string       `json:"voice_text_str"`
	WordList     []serverWord `json:"word_list"`
}

// serverMessage 服务端入站消息。code 非 0 表示服务端错误。
type serverMessage struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	VoiceID string       `json:"voice_id"`
	Final   int          `json:"final"`
	Result  serverResult `json:"result"`
}

// decodeServerMessage 解析服务端 JSON 文本帧。
func decodeServerMessage(data []byte) (*serverMessage, error) {
	var msg serverMessage
	if err := sonic.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("解析服务端消息失败: %w", err)
	}
	return &msg, nil
}

// toResult 将服务端消息转换为上层结果，服务端文本与时间戳原样透传。
func (m *serverMessage) toResult() *speechmodel.RecognitionResult {
	result := &speechmodel.RecognitionResult{
		VoiceID: m.VoiceID,
		Text:    m.Result.VoiceTextStr,
		IsFinal: m.Final == 1,
	}
	for _, w := range m.Result.WordList {
		result.Words = append(result.Words, speechmodel.Word{
			Word:    w.Word,
			StartMs: w.StartTime,
			EndMs:   w.EndTime,
		})
	}
	return result
}
