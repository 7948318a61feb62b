package domain

// History maps a day to the number of habits completed that day. Missing keys
// and zero or negative values all mean "no activity".
type History map[DayKey]int

func (h History) Count(d DayKey) int {
	if v := h[d]; v > 0 {
		return v
	}
	return 0
}

func (h History) Active(d DayKey) bool {
	return h.Count(d) > 0
}

// ActiveDays is the number of days with at least one completion.
func (h History) ActiveDays() int {
	n := 0
	for _, v := range h {
		if v > 0 {
			n++
		}
	}
	return n
}

func (h History) Clone() History {
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// AppData is the persisted aggregate. The JSON shape is the durable slot's
// document format.
type AppData struct {
	Habits    []Habit `json:"habits"`
	History   History `json:"history"`
	Streak    int     `json:"streak"`
	MaxStreak int     `json:"maxStreak"`
	LastDate  DayKey  `json:"lastDate,omitempty"`
}

// NewAppData is the first-run state: catalog defaults and no history.
func NewAppData(catalog *Catalog) *AppData {
	return &AppData{
		Habits:  catalog.Defaults(),
		History: History{},
	}
}

func (d *AppData) Clone() AppData {
	habits := make([]Habit, len(d.Habits))
	copy(habits, d.Habits)

	return AppData{
		Habits:    habits,
		History:   d.History.Clone(),
		Streak:    d.Streak,
		MaxStreak: d.MaxStreak,
		LastDate:  d.LastDate,
	}
}

func (d *AppData) CompletedCount() int {
	n := 0
	for _, h := range d.Habits {
		if h.Completed {
			n++
		}
	}
	return n
}

// ApplyRollover moves the aggregate to today. It reports whether anything
// changed; a second call with the same day is a no-op.
//
// Any gap since the last session, or an inactive yesterday, breaks the streak.
func (d *AppData) ApplyRollover(today DayKey) bool {
	if d.LastDate == today {
		return false
	}

	if d.LastDate != "" {
		yesterday := PreviousDayKey(today)
		if d.LastDate != yesterday || !d.History.Active(yesterday) {
			d.Streak = 0
		}
	}

	for i := range d.Habits {
		d.Habits[i].Completed = false
	}
	d.LastDate = today

	return true
}

// Toggle flips the habit's completion for today and refreshes history and
// streaks. Unknown ids are ignored and reported as false.
func (d *AppData) Toggle(habitID string, today DayKey) bool {
	idx := -1
	for i := range d.Habits {
		if d.Habits[i].ID == habitID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	d.Habits[idx].Completed = !d.Habits[idx].Completed

	if d.History == nil {
		d.History = History{}
	}
	d.History[today] = d.CompletedCount()

	d.RecalculateStreak(today)
	return true
}

// RecalculateStreak counts consecutive active days walking back from today.
// An empty today is skipped once instead of ending the walk, so yesterday's
// chain survives while the day is still open.
func (d *AppData) RecalculateStreak(today DayKey) {
	count := 0
	skippedToday := false

	for day := today; ; {
		if d.History.Active(day) {
			count++
			day = PreviousDayKey(day)
			continue
		}
		if day == today && !skippedToday {
			skippedToday = true
			day = PreviousDayKey(day)
			continue
		}
		break
	}

	d.Streak = count
	if d.Streak > d.MaxStreak {
		d.MaxStreak = d.Streak
	}
}
