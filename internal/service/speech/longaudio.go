package speech

import (
	"context"
	"encoding/base64"
	"strconv"

	speechmodel "github.com/a572204654-source/jlzr002-sub000/internal/model/speech"
)

type createTaskRequest struct {
	EngineModelType string `json:"EngineModelType"`
	ChannelNum      int    `json:"ChannelNum"`
	ResTextFormat   int    `json:"ResTextFormat"`
	SourceType      int    `json:"SourceType"`
	URL             string `json:"Url,omitempty"`
	Data            string `json:"Data,omitempty"`
	DataLen         int    `json:"DataLen,omitempty"`
	FilterDirty     int    `json:"FilterDirty"`
	FilterModal     int    `json:"FilterModal"`
	FilterPunc      int    `json:"FilterPunc"`
	ConvertNumMode  int    `json:"ConvertNumMode"`
}

type taskStatusData struct {
	TaskID    uint64 `json:"TaskId"`
	Status    int    `json:"Status"`
	StatusStr string `json:"StatusStr"`
	Result    string `json:"Result"`
	ErrorMsg  string `json:"ErrorMsg"`
}

type taskResponse struct {
	Response struct {
		RequestID string         `json:"RequestId"`
		Data      taskStatusData `json:"Data"`
	} `json:"Response"`
}

// CreateLongAudioTaskFromURL 以音频 URL 创建录音文件识别任务。
// 只提交、拿到任务号即返回，不在本端做任何状态查询或结果缓存；
// 进度与结果统一走 DescribeLongAudioTask。
func (s *Service) CreateLongAudioTaskFromURL(ctx context.Context, audioURL string, cfg *speechmodel.RecognitionConfig) (*speechmodel.LongAudioTask, error) {
	if audioURL == "" {
		return nil, &ConfigError{Reason: "音频 URL 为空"}
	}
	cfg, err := s.normalize(cfg)
	if err != nil {
		return nil, err
	}
	req := newCreateTaskRequest(cfg)
	req.SourceType = 0
	req.URL = audioURL
	return s.createTask(ctx, req)
}

// CreateLongAudioTask 以本地音频数据创建录音文件识别任务。
func (s *Service) CreateLongAudioTask(ctx context.Context, audio []byte, cfg *speechmodel.RecognitionConfig) (*speechmodel.LongAudioTask, error) {
	if len(audio) == 0 {
		return nil, &ConfigError{Reason: "音频数据为空"}
	}
	cfg, err := s.normalize(cfg)
	if err != nil {
		return nil, err
	}
	req := newCreateTaskRequest(cfg)
	req.SourceType = 1
	req.Data = base64.StdEncoding.EncodeToString(audio)
	req.DataLen = len(audio)
	return s.createTask(ctx, req)
}

func newCreateTaskRequest(cfg *speechmodel.RecognitionConfig) createTaskRequest {
	return createTaskRequest{
		EngineModelType: cfg.EngineModelType,
		ChannelNum:      1,
		ResTextFormat:   0,
		FilterDirty:     cfg.FilterDirty,
		FilterModal:     cfg.FilterModal,
		FilterPunc:      cfg.FilterPunc,
		ConvertNumMode:  cfg.ConvertNumMode,
	}
}

func (s *Service) createTask(ctx context.Context, req createTaskRequest) (*speechmodel.LongAudioTask, error) {
	var resp taskResponse
	if err := s.rest.do(ctx, "CreateRecTask", req, &resp); err != nil {
		return nil, err
	}
	return &speechmodel.LongAudioTask{
		TaskID: resp.Response.Data.TaskID,
		Status: speechmodel.TaskPending,
	}, nil
}

// DescribeLongAudioTask 查询录音文件识别任务的当前状态与结果。
func (s *Service) DescribeLongAudioTask(ctx context.Context, taskID uint64) (*speechmodel.LongAudioTask, error) {
	req := struct {
		TaskID uint64 `json:"TaskId"`
	}{TaskID: taskID}

	var resp taskResponse
	if err := s.rest.do(ctx, "DescribeTaskStatus", req, &resp); err != nil {
		return nil, err
	}

	data := resp.Response.Data
	status, err := taskStatusFromCode(data.Status)
	if err != nil {
		return nil, err
	}
	return &speechmodel.LongAudioTask{
		TaskID:       taskID,
		Status:       status,
		ResultText:   data.Result,
		ErrorMessage: data.ErrorMsg,
	}, nil
}

func taskStatusFromCode(code int) (speechmodel.TaskStatus, error) {
	switch code {
	case 0:
		return speechmodel.TaskPending, nil
	case 1:
		return speechmodel.TaskProcessing, nil
	case 2:
		return speechmodel.TaskSuccess, nil
	case 3:
		return speechmodel.TaskFailed, nil
	default:
		return "", &ProviderError{
			Code:    "UnknownTaskStatus",
			Message: "未知的任务状态码: " + strconv.Itoa(code),
		}
	}
}
