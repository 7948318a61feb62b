package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

var (
	ErrInvalidRange = errors.New("heatmap range must be between 1 and 366 days")
)

type SnapshotReader interface {
	Current(ctx context.Context) (domain.AppData, error)
	Now() time.Time
}

// StatsService is the read side: it only ever sees snapshots.
type StatsService struct {
	src SnapshotReader
}

func NewStatsService(src SnapshotReader) *StatsService {
	return &StatsService{src: src}
}

func (s *StatsService) GetStats(ctx context.Context) (domain.Stats, error) {
	snapshot, err := s.src.Current(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	now := s.src.Now()
	today := snapshot.LastDate

	label := ""
	if date, ok := today.Date(); ok {
		label = date.Format("Jan 2")
	}

	return domain.Stats{
		Today:           today,
		TodayLabel:      label,
		CurrentStreak:   snapshot.Streak,
		MaxStreak:       snapshot.MaxStreak,
		TotalActiveDays: snapshot.History.ActiveDays(),
		CompletedToday:  snapshot.CompletedCount(),
		TotalHabits:     len(snapshot.Habits),
		DayProgress:     roundTenth(domain.DayProgress(now)),
		YearProgress:    roundTenth(domain.YearProgress(now)),
	}, nil
}

// GetHeatmap projects history ending at end, or today when end is empty.
func (s *StatsService) GetHeatmap(ctx context.Context, end domain.DayKey, days int) (domain.Heatmap, error) {
	if days == 0 {
		days = HeatmapDays
	}
	if days < 1 || days > MaxHeatmapDays {
		return domain.Heatmap{}, ErrInvalidRange
	}
	if end != "" && !end.Valid() {
		return domain.Heatmap{}, domain.ErrInvalidDayKey
	}

	snapshot, err := s.src.Current(ctx)
	if err != nil {
		return domain.Heatmap{}, err
	}
	if end == "" {
		end = snapshot.LastDate
	}

	return ProjectHeatmap(snapshot.History, end, days), nil
}

func roundTenth(pct float64) float64 {
	return math.Round(pct*10) / 10
}
