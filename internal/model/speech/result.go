package speech

// Word 词级时间戳
type Word struct {
	Word    string `json:"word"`
	StartMs int64  `json:"startMs"`
	EndMs   int64  `json:"endMs"`
}

// RecognitionResult 实时识别的单条结果，服务端原样透传。
// IsFinal 为 true 表示这条是本次语音的最终文本，之前的中间结果均被其取代。
type RecognitionResult struct {
	VoiceID string `json:"voiceId"`
	Text    string `json:"text"`
	IsFinal bool   `json:"isFinal"`
	Words   []Word `json:"words,omitempty"`
}

// FileResult 文件识别的聚合结果
type FileResult struct {
	Text        string `json:"text"`
	Words       []Word `json:"wordList,omitempty"`
	AudioTimeMs int64  `json:"audioTimeMs"` // 按固定采样率估算的音频时长
}

// SentenceResult 一句话识别结果
type SentenceResult struct {
	Text      string `json:"text"`
	AudioTime int64  `json:"audioTime"`
	RequestID string `json:"requestId,omitempty"`
}

// TaskStatus 录音文件识别任务状态
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskProcessing TaskStatus = "PROCESSING"
	TaskSuccess    TaskStatus = "SUCCESS"
	TaskFailed     TaskStatus = "FAILED"
)

// LongAudioTask 录音文件识别任务。状态只来源于服务端查询，本地从不推演。
type LongAudioTask struct {
	TaskID       uint64     `json:"taskId"`
	Status       TaskStatus `json:"status"`
	ResultText   string     `json:"resultText,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}
