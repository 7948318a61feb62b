package domain

type Bucket int

const (
	BucketEmpty Bucket = iota
	BucketLow
	BucketMid
	BucketHigh
)

// BucketFor classifies a day's completion count: 0, 1-2, 3-4, 5+.
func BucketFor(count int) Bucket {
	switch {
	case count >= 5:
		return BucketHigh
	case count >= 3:
		return BucketMid
	case count >= 1:
		return BucketLow
	default:
		return BucketEmpty
	}
}

func (b Bucket) String() string {
	switch b {
	case BucketLow:
		return "low"
	case BucketMid:
		return "mid"
	case BucketHigh:
		return "high"
	default:
		return "empty"
	}
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

type HeatmapCell struct {
	Day    DayKey `json:"day"`
	Count  int    `json:"count"`
	Bucket Bucket `json:"bucket"`
	Label  string `json:"label"`
}

type Heatmap struct {
	Start DayKey `json:"start"`
	End   DayKey `json:"end"`
	// LeadingBlanks is the weekday of Start (0 = Sunday), used to pad the
	// first grid column.
	LeadingBlanks int           `json:"leading_blanks"`
	Cells         []HeatmapCell `json:"cells"`
}

type Stats struct {
	Today           DayKey `json:"today"`
	TodayLabel      string `json:"today_label"`
	CurrentStreak   int    `json:"current_streak"`
	MaxStreak       int    `json:"max_streak"`
	TotalActiveDays int    `json:"total_active_days"`
	CompletedToday  int    `json:"completed_today"`
	TotalHabits     int    `json:"total_habits"`

	DayProgress  float64 `json:"day_progress"`
	YearProgress float64 `json:"year_progress"`
}
