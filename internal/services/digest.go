package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/alwadigroup/alwadi-backend/internal/config"
	"github.com/alwadigroup/alwadi-backend/internal/models"
	"github.com/alwadigroup/alwadi-backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DigestService emits a once-a-day structured log line summarizing the
// previous day's feedback, for the ops channel that tails the service
// logs.
type DigestService struct {
	db            *gorm.DB
	cfg           *config.DigestConfig
	cronScheduler *cron.Cron
}

func NewDigestService(db *gorm.DB, cfg *config.DigestConfig) *DigestService {
	return &DigestService{db: db, cfg: cfg}
}

// DigestSummary aggregates one calendar day of feedback.
type DigestSummary struct {
	Date         string  `json:"date"`
	Total        int64   `json:"total"`
	Positive     int64   `json:"positive"`
	Negative     int64   `json:"negative"`
	Neutral      int64   `json:"neutral"`
	Responded    int64   `json:"responded"`
	ResponseRate float64 `json:"responseRate"`
}

// StartScheduler registers the daily job. No-op when disabled.
func (s *DigestService) StartScheduler() {
	if !s.cfg.Enabled {
		return
	}

	s.cronScheduler = cron.New()

	hour, minute := parseDigestTime(s.cfg.Time)
	cronExpr := fmt.Sprintf("%d %d * * *", minute, hour)

	if _, err := s.cronScheduler.AddFunc(cronExpr, s.run); err != nil {
		logger.Error().Err(err).Str("expr", cronExpr).Msg("[Digest] failed to schedule daily digest")
		return
	}

	s.cronScheduler.Start()
	logger.Info().Str("time", s.cfg.Time).Msg("[Digest] scheduler started")
}

func (s *DigestService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *DigestService) run() {
	yesterday := time.Now().AddDate(0, 0, -1)
	summary, err := s.ComputeDigest(yesterday)
	if err != nil {
		logger.Error().Err(err).Msg("[Digest] failed to compute daily digest")
		return
	}

	logger.Info().
		Str("date", summary.Date).
		Int64("total", summary.Total).
		Int64("positive", summary.Positive).
		Int64("negative", summary.Negative).
		Int64("neutral", summary.Neutral).
		Int64("responded", summary.Responded).
		Float64("response_rate", summary.ResponseRate).
		Msg("[Digest] daily feedback digest")
}

// ComputeDigest aggregates the local calendar day containing day.
func (s *DigestService) ComputeDigest(day time.Time) (*DigestSummary, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	summary := &DigestSummary{Date: dayStart.Format("2006-01-02")}

	window := s.db.Model(&models.Feedback{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd)

	if err := window.Count(&summary.Total).Error; err != nil {
		return nil, fmt.Errorf("count digest feedback: %w", err)
	}

	counts := map[string]*int64{
		models.SentimentPositive: &summary.Positive,
		models.SentimentNegative: &summary.Negative,
		models.SentimentNeutral:  &summary.Neutral,
	}
	for sentiment, dst := range counts {
		if err := s.db.Model(&models.Feedback{}).
			Where("created_at >= ? AND created_at < ? AND sentiment = ?", dayStart, dayEnd, sentiment).
			Count(dst).Error; err != nil {
			return nil, fmt.Errorf("count digest %s feedback: %w", sentiment, err)
		}
	}

	if err := s.db.Model(&models.Feedback{}).
		Where("created_at >= ? AND created_at < ? AND is_responded = ?", dayStart, dayEnd, true).
		Count(&summary.Responded).Error; err != nil {
		return nil, fmt.Errorf("count digest responded feedback: %w", err)
	}

	if summary.Total > 0 {
		summary.ResponseRate = float64(summary.Responded) / float64(summary.Total) * 100
	}

	return summary, nil
}

// parseDigestTime parses "HH:MM", falling back to 18:00 on bad input.
func parseDigestTime(value string) (hour, minute int) {
	hour, minute = 18, 0
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return
	}
	return h, m
}
