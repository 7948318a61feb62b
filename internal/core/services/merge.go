package services

import "github.com/Rowdraraz100/RazNotes/internal/core/domain"

// MergeHabits rebuilds the live habit list from the catalog. Name and icon
// always come from the catalog; completed is restored from the first stored
// habit with the same id. Stored ids missing from the catalog are dropped.
func MergeHabits(catalog *domain.Catalog, stored []domain.Habit) []domain.Habit {
	completed := make(map[string]bool, len(stored))
	for _, h := range stored {
		if _, seen := completed[h.ID]; !seen {
			completed[h.ID] = h.Completed
		}
	}

	habits := catalog.Defaults()
	for i := range habits {
		habits[i].Completed = completed[habits[i].ID]
	}
	return habits
}

// MergeStored builds the aggregate from a stored document. A nil document
// yields first-run defaults.
func MergeStored(catalog *domain.Catalog, stored *domain.StoredData) *domain.AppData {
	if stored == nil {
		return domain.NewAppData(catalog)
	}

	history := stored.History.Clone()

	streak := max(stored.Streak, 0)
	maxStreak := max(stored.MaxStreak, streak)

	return &domain.AppData{
		Habits:    MergeHabits(catalog, stored.Habits),
		History:   history,
		Streak:    streak,
		MaxStreak: maxStreak,
		LastDate:  stored.LastDate,
	}
}
