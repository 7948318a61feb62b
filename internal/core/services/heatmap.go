package services

import "github.com/Rowdraraz100/RazNotes/internal/core/domain"

const (
	HeatmapDays    = 365
	MaxHeatmapDays = 366
)

// ProjectHeatmap lays out the days consecutive calendar days ending at
// endDay, oldest first. It only reads history.
func ProjectHeatmap(history domain.History, endDay domain.DayKey, days int) domain.Heatmap {
	hm := domain.Heatmap{End: endDay, Cells: []domain.HeatmapCell{}}
	if days <= 0 || !endDay.Valid() {
		return hm
	}

	start := domain.AddDays(endDay, -(days - 1))
	hm.Start = start
	hm.LeadingBlanks = int(start.Weekday())
	hm.Cells = make([]domain.HeatmapCell, 0, days)

	for i, day := 0, start; i < days; i, day = i+1, domain.AddDays(day, 1) {
		count := history.Count(day)
		date, _ := day.Date()

		hm.Cells = append(hm.Cells, domain.HeatmapCell{
			Day:    day,
			Count:  count,
			Bucket: domain.BucketFor(count),
			Label:  date.Format("Mon, Jan 2"),
		})
	}

	return hm
}
