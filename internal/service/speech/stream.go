package speech

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

// 文件转写按约 400ms 的音频切片、约 40ms 的节奏上送，模拟实时采集；
// 16kHz 16bit 单声道 PCM 下每毫秒 32 字节。
const bytesPerMillisecond = 32

// streamOptions 文件转写的切片与收尾参数。
type streamOptions struct {
	ChunkSize         int           // 每帧音频字节数
	ChunkInterval     time.Duration // 帧间节奏
	FinalGrace        time.Duration // 收到 final 结果后的余量
	CompletionTimeout time.Duration // 末帧之后等待 final 的上限
}

func defaultStreamOptions() streamOptions {
	return streamOptions{
		ChunkSize:         12800,
		ChunkInterval:     40 * time.Millisecond,
		FinalGrace:        300 * time.Millisecond,
		CompletionTimeout: 3 * time.Second,
	}
}

// realtimeStream 文件转写依赖的会话面。RealtimeSession 实现该接口，
// 测试可以用内存假实现替换。
type realtimeStream interface {
	Send(chunk []byte, isEnd bool) error
	Results() <-chan *speechmodel.RecognitionResult
	Done() <-chan error
	Close() error
}

// RecognizeAudio 把一整段音频转写为文本。
//
// 内部建立实时会话，按节奏切片上送，聚合最后一个 final 结果。
// 末帧送达后等待 final，超时不视为错误，返回已到达的最优文本。
func (s *Service) RecognizeAudio(ctx context.Context, audio []byte, cfg *speechmodel.RecognitionConfig) (*speechmodel.FileResult, error) {
	if len(audio) == 0 {
		return nil, &ConfigError{Reason: "音频数据为空"}
	}

	sess, err := s.CreateRealtimeSession(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s.logger.Info("开始整段转写",
		zap.Int("bytes", len(audio)),
		zap.String("voiceId", sess.VoiceID()))

	return recognizeOnStream(ctx, sess, audio, s.streamOpts)
}

// RecognizeFile 读取本地音频文件并整体转写，见 RecognizeAudio。
func (s *Service) RecognizeFile(ctx context.Context, path string, cfg *speechmodel.RecognitionConfig) (*speechmodel.FileResult, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取音频文件失败: %w", err)
	}
	return s.RecognizeAudio(ctx, audio, cfg)
}

// recognizeOnStream 在已建立的会话上完成切片上送与结果聚合。
func recognizeOnStream(ctx context.Context, sess realtimeStream, audio []byte, opts streamOptions) (*speechmodel.FileResult, error) {
	defer sess.Close()

	// 发送协程：按节奏切片上送，末帧置 End 标记。
	sendErr := make(chan error, 1)
	lastSent := make(chan struct{})
	go func() {
		ticker := time.NewTicker(opts.ChunkInterval)
		defer ticker.Stop()
		for offset := 0; offset < len(audio); offset += opts.ChunkSize {
			end := offset + opts.ChunkSize
			isLast := end >= len(audio)
			if isLast {
				end = len(audio)
			}
			if err := sess.Send(audio[offset:end], isLast); err != nil {
				sendErr <- err
				return
			}
			if isLast {
				close(lastSent)
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				sendErr <- ctx.Err()
				return
			}
		}
	}()

	var (
		final     *speechmodel.RecognitionResult
		bestText  string
		deadline  <-chan time.Time // 末帧后等待 final 的上限
		grace     <-chan time.Time // final 到达后的收尾余量
		timer     *time.Timer
		graceTick *time.Timer
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if graceTick != nil {
			graceTick.Stop()
		}
	}()

	resolve := func() (*speechmodel.FileResult, error) {
		res := &speechmodel.FileResult{
			Text:        bestText,
			AudioTimeMs: int64(len(audio) / bytesPerMillisecond),
		}
		if final != nil {
			res.Text = final.Text
			res.Words = final.Words
		}
		return res, nil
	}

	results := sess.Results()
	for {
		select {
		case res, ok := <-results:
			if !ok {
				results = nil // 终止原因等 Done 投递
				continue
			}
			bestText = res.Text
			if res.IsFinal {
				final = res
				graceTick = time.NewTimer(opts.FinalGrace)
				grace = graceTick.C
			}
		case err := <-sess.Done():
			if err != nil {
				return nil, err
			}
			return resolve()
		case err := <-sendErr:
			return nil, err
		case <-lastSent:
			lastSent = nil
			timer = time.NewTimer(opts.CompletionTimeout)
			deadline = timer.C
		case <-grace:
			return resolve()
		case <-deadline:
			// 超时不是错误：返回目前为止的最优文本
			return resolve()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
