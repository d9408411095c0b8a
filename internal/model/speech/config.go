package speech

import "fmt"

// SpeechConfig 语音识别服务配置
type SpeechConfig struct {
	AppID       string `json:"appId"`       // 账号 AppId，实时识别接入路径的一部分
	SecretID    string `json:"secretId"`    // API 密钥 SecretId
	SecretKey   string `json:"secretKey"`   // API 密钥 SecretKey
	Region      string `json:"region"`      // 服务区域
	EngineModel string `json:"engineModel"` // 默认引擎模型，如 16k_zh
	Timeout     int    `json:"timeout"`     // REST 请求超时（秒）
	Enabled     bool   `json:"enabled"`     // 是否提供了必需的密钥
}

// RecognitionConfig 单次识别/会话的参数集合。
// 默认值在 DefaultRecognitionConfig 中统一给出，并在服务构造处一次性校验，
// 不在各调用点分散推导。
type RecognitionConfig struct {
	EngineModelType string `json:"engineModelType"` // 引擎模型，如 16k_zh、16k_en
	VoiceFormat     int    `json:"voiceFormat"`     // 音频格式编码，见 VoiceFormatName
	NeedVAD         int    `json:"needVad"`         // 是否开启服务端静音检测 0/1
	FilterDirty     int    `json:"filterDirty"`     // 脏词过滤 0-2
	FilterModal     int    `json:"filterModal"`     // 语气词过滤 0-2
	FilterPunc      int    `json:"filterPunc"`      // 句末标点过滤 0/1
	ConvertNumMode  int    `json:"convertNumMode"`  // 数字智能转换 0/1/3
	WordInfo        int    `json:"wordInfo"`        // 词级时间戳 0-2
	VadSilenceTime  int    `json:"vadSilenceTime"`  // VAD 断句门限（毫秒），0 表示不下发
	HotwordID       string `json:"hotwordId"`       // 热词表 ID，可选
	CustomizationID string `json:"customizationId"` // 自学习模型 ID，可选
}

// DefaultRecognitionConfig 返回推荐默认参数：16k 中文、PCM、开启 VAD。
func DefaultRecognitionConfig() *RecognitionConfig {
	return &RecognitionConfig{
		EngineModelType: "16k_zh",
		VoiceFormat:     FormatPCM,
		NeedVAD:         1,
		ConvertNumMode:  1,
	}
}

// 音频格式编码，与实时识别接口的 voice_format 取值一致。
const (
	FormatPCM   = 1
	FormatSpeex = 4
	FormatSilk  = 6
	FormatMP3   = 8
	FormatOpus  = 10
	FormatWAV   = 12
	FormatM4A   = 14
	FormatAAC   = 16
)

var voiceFormatNames = map[int]string{
	FormatPCM:   "pcm",
	FormatSpeex: "speex",
	FormatSilk:  "silk",
	FormatMP3:   "mp3",
	FormatOpus:  "opus",
	FormatWAV:   "wav",
	FormatM4A:   "m4a",
	FormatAAC:   "aac",
}

// VoiceFormatName 将流式协议的格式编码映射为 REST 接口使用的格式名。
func (c *RecognitionConfig) VoiceFormatName() string {
	if name, ok := voiceFormatNames[c.VoiceFormat]; ok {
		return name
	}
	return "pcm"
}

// Validate 一次性校验识别参数，非法取值立即报错而不是留到请求时。
func (c *RecognitionConfig) Validate() error {
	if c.EngineModelType == "" {
		return fmt.Errorf("engine_model_type 不能为空")
	}
	if _, ok := voiceFormatNames[c.VoiceFormat]; !ok {
		return fmt.Errorf("不支持的 voice_format: %d", c.VoiceFormat)
	}
	if c.NeedVAD < 0 || c.NeedVAD > 1 {
		return fmt.Errorf("needvad 取值必须为 0 或 1: %d", c.NeedVAD)
	}
	if c.FilterDirty < 0 || c.FilterDirty > 2 {
		return fmt.Errorf("filter_dirty 取值必须在 0-2 之间: %d", c.FilterDirty)
	}
	if c.FilterModal < 0 || c.FilterModal > 2 {
		return fmt.Errorf("filter_modal 取值必须在 0-2 之间: %d", c.FilterModal)
	}
	if c.FilterPunc < 0 || c.FilterPunc > 1 {
		return fmt.Errorf("filter_punc 取值必须为 0 或 1: %d", c.FilterPunc)
	}
	switch c.ConvertNumMode {
	case 0, 1, 3:
	default:
		return fmt.Errorf("convert_num_mode 取值必须为 0/1/3: %d", c.ConvertNumMode)
	}
	if c.WordInfo < 0 || c.WordInfo > 2 {
		return fmt.Errorf("word_info 取值必须在 0-2 之间: %d", c.WordInfo)
	}
	if c.VadSilenceTime != 0 && (c.VadSilenceTime < 240 || c.VadSilenceTime > 2000) {
		return fmt.Errorf("vad_silence_time 取值必须在 240-2000 毫秒之间: %d", c.VadSilenceTime)
	}
	return nil
}
