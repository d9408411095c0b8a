package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/a572204654-source/jlzr002-sub000/internal/config"
	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
	"github.com/a572204654-source/jlzr002-sub000/internal/service/speech"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	if !cfg.Speech.Enabled {
		log.Fatal("语音服务未启用，请先在环境变量中配置 SPEECH_APP_ID/SPEECH_SECRET_ID/SPEECH_SECRET_KEY")
	}

	mode := flag.String("mode", "", "测试模式: file、sentence、submit 或 query")
	audioPath := flag.String("audio", "", "输入音频文件路径 (file/sentence/submit 模式)")
	audioURL := flag.String("url", "", "音频 URL (submit 模式，优先于 -audio)")
	taskID := flag.Uint64("task", 0, "任务号 (query 模式)")
	optionsPath := flag.String("options", "", "识别参数 TOML 文件路径，留空则使用默认参数")
	timeout := flag.Duration("timeout", 120*time.Second, "请求超时时间")
	verbose := flag.Bool("v", false, "输出调试日志")

	flag.Parse()

	recCfg, err := loadRecognitionOptions(*optionsPath)
	if err != nil {
		log.Fatalf("识别参数加载失败: %v", err)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("日志初始化失败: %v", err)
		}
		defer logger.Sync()
	}

	svc, err := speech.NewService(&cfg.Speech, logger)
	if err != nil {
		log.Fatalf("语音服务初始化失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *mode {
	case "file":
		runFile(ctx, svc, *audioPath, recCfg)
	case "sentence":
		runSentence(ctx, svc, *audioPath, recCfg)
	case "submit":
		runSubmit(ctx, svc, *audioPath, *audioURL, recCfg)
	case "query":
		runQuery(ctx, svc, *taskID)
	default:
		flag.Usage()
		log.Fatal("请通过 -mode=file|sentence|submit|query 指定测试模式")
	}
}

// loadRecognitionOptions 从 TOML 文件加载识别参数，路径为空时返回 nil 走默认值。
func loadRecognitionOptions(path string) (*speechmodel.RecognitionConfig, error) {
	if path == "" {
		return nil, nil
	}
	var recCfg speechmodel.RecognitionConfig
	if _, err := toml.DecodeFile(path, &recCfg); err != nil {
		return nil, err
	}
	return &recCfg, nil
}

func runFile(ctx context.Context, svc *speech.Service, audioPath string, recCfg *speechmodel.RecognitionConfig) {
	if audioPath == "" {
		log.Fatal("file 模式需要通过 -audio 指定音频文件路径")
	}

	log.Printf("开始文件转写: %s", audioPath)
	start := time.Now()

	result, err := svc.RecognizeFile(ctx, audioPath, recCfg)
	if err != nil {
		log.Fatalf("文件转写失败: %v", err)
	}

	log.Printf("文件转写完成: text=%q 音频时长=%dms 耗时=%s",
		result.Text, result.AudioTimeMs, time.Since(start).Round(time.Millisecond))
}

func runSentence(ctx context.Context, svc *speech.Service, audioPath string, recCfg *speechmodel.RecognitionConfig) {
	if audioPath == "" {
		log.Fatal("sentence 模式需要通过 -audio 指定音频文件路径")
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		log.Fatalf("读取音频文件失败: %v", err)
	}

	result, err := svc.RecognizeSentence(ctx, audio, recCfg)
	if err != nil {
		log.Fatalf("一句话识别失败: %v", err)
	}

	log.Printf("一句话识别成功: text=%q 音频时长=%ds requestId=%s",
		result.Text, result.AudioTime, result.RequestID)
}

func runSubmit(ctx context.Context, svc *speech.Service, audioPath, audioURL string, recCfg *speechmodel.RecognitionConfig) {
	var (
		task *speechmodel.LongAudioTask
		err  error
	)

	switch {
	case audioURL != "":
		task, err = svc.CreateLongAudioTaskFromURL(ctx, audioURL, recCfg)
	case audioPath != "":
		var audio []byte
		audio, err = os.ReadFile(audioPath)
		if err != nil {
			log.Fatalf("读取音频文件失败: %v", err)
		}
		task, err = svc.CreateLongAudioTask(ctx, audio, recCfg)
	default:
		log.Fatal("submit 模式需要通过 -url 或 -audio 指定音频来源")
	}

	if err != nil {
		log.Fatalf("任务提交失败: %v", err)
	}

	log.Printf("任务已提交: taskId=%d，稍后用 -mode=query -task=%d 查询结果", task.TaskID, task.TaskID)
}

func runQuery(ctx context.Context, svc *speech.Service, taskID uint64) {
	if taskID == 0 {
		log.Fatal("query 模式需要通过 -task 指定任务号")
	}

	task, err := svc.DescribeLongAudioTask(ctx, taskID)
	if err != nil {
		log.Fatalf("任务查询失败: %v", err)
	}

	switch task.Status {
	case speechmodel.TaskSuccess:
		log.Printf("任务完成: text=%q", task.ResultText)
	case speechmodel.TaskFailed:
		log.Printf("任务失败: %s", task.ErrorMessage)
	default:
		log.Printf("任务进行中: status=%s", task.Status)
	}
}
