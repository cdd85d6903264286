package services

import (
	"fmt"
	"math"
	"time"

	"github.com/alwadigroup/alwadi-backend/internal/models"
	"gorm.io/gorm"
)

// AnalyticsService computes dashboard aggregates. All queries scan the
// live tables on demand; nothing is cached or maintained incrementally.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type SentimentStats struct {
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
	Total    int64 `json:"total"`
}

type TrendBucket struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

type ResponseStats struct {
	ResponseRate    float64 `json:"responseRate"`
	AvgResponseTime float64 `json:"avgResponseTime"`
}

// GetSentimentStats counts all feedback by label, unbounded in time.
func (s *AnalyticsService) GetSentimentStats() (*SentimentStats, error) {
	var stats SentimentStats

	counts := map[string]*int64{
		models.SentimentPositive: &stats.Positive,
		models.SentimentNegative: &stats.Negative,
		models.SentimentNeutral:  &stats.Neutral,
	}
	for sentiment, dst := range counts {
		if err := s.db.Model(&models.Feedback{}).
			Where("sentiment = ?", sentiment).
			Count(dst).Error; err != nil {
			return nil, fmt.Errorf("count %s feedback: %w", sentiment, err)
		}
	}

	stats.Total = stats.Positive + stats.Negative + stats.Neutral
	return &stats, nil
}

// GetSentimentTrends buckets feedback by local calendar day for the
// last days days, today included, oldest first. The series is always
// exactly days entries long; empty days carry zero counts. Bucketing
// happens in process so day boundaries are identical across database
// drivers.
func (s *AnalyticsService) GetSentimentTrends(days int) ([]TrendBucket, error) {
	if days <= 0 {
		days = 30
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowStart := todayStart.AddDate(0, 0, -(days - 1))

	var rows []models.Feedback
	if err := s.db.
		Select("sentiment", "created_at").
		Where("created_at >= ?", windowStart).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load feedback for trends: %w", err)
	}

	buckets := make([]TrendBucket, days)
	index := make(map[string]*TrendBucket, days)
	for i := 0; i < days; i++ {
		date := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = TrendBucket{Date: date}
		index[date] = &buckets[i]
	}

	for _, row := range rows {
		bucket, ok := index[row.CreatedAt.In(now.Location()).Format("2006-01-02")]
		if !ok {
			continue
		}
		switch row.Sentiment {
		case models.SentimentPositive:
			bucket.Positive++
		case models.SentimentNegative:
			bucket.Negative++
		case models.SentimentNeutral:
			bucket.Neutral++
		}
	}

	return buckets, nil
}

// GetResponseStats reports the responded percentage and the mean time
// to response in hours over responded records. Both zero-total cases
// return 0 rather than dividing by zero.
func (s *AnalyticsService) GetResponseStats() (*ResponseStats, error) {
	var total, responded int64

	if err := s.db.Model(&models.Feedback{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}
	if err := s.db.Model(&models.Feedback{}).
		Where("is_responded = ?", true).
		Count(&responded).Error; err != nil {
		return nil, fmt.Errorf("count responded feedback: %w", err)
	}

	stats := &ResponseStats{}
	if total > 0 {
		stats.ResponseRate = float64(responded) / float64(total) * 100
	}

	var respondedRows []models.Feedback
	if err := s.db.
		Select("created_at", "responded_at").
		Where("is_responded = ? AND responded_at IS NOT NULL", true).
		Find(&respondedRows).Error; err != nil {
		return nil, fmt.Errorf("load responded feedback: %w", err)
	}

	if len(respondedRows) > 0 {
		var totalHours float64
		for _, row := range respondedRows {
			totalHours += row.RespondedAt.Sub(row.CreatedAt).Hours()
		}
		avg := totalHours / float64(len(respondedRows))
		stats.AvgResponseTime = math.Round(avg*10) / 10
	}

	return stats, nil
}
