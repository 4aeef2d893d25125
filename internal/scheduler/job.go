package scheduler

import (
	"context"
	"time"
)

// Job 스케줄 작업 인터페이스
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	// Name 작업 이름
	Name() string

	// Run 작업 실행
	Run(ctx context.Context) error

	// Schedule cron 표현식 (초 필드 포함)
	// 예: "0 0 2 * * *" (매일 02:00)
	Schedule() string
}

// JobResult 1회 실행 결과
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// JobHistory 작업 실행 이력 (최근 100건 유지)
type JobHistory struct {
	Results []JobResult
}

// AddResult 실행 결과 기록
func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)

	if len(h.Results) > 100 {
		h.Results = h.Results[len(h.Results)-100:]
	}
}

// SuccessRate 성공률 (0.0 ~ 1.0)
func (h *JobHistory) SuccessRate() float64 {
	if len(h.Results) == 0 {
		return 0.0
	}

	success := 0
	for _, result := range h.Results {
		if result.Success {
			success++
		}
	}
	return float64(success) / float64(len(h.Results))
}
