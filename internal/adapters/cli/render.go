package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7F1D1D")).
			Padding(0, 1)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DC2626")).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#B91C1C")).
			Padding(0, 1)

	bucketStyles = map[domain.Bucket]lipgloss.Style{
		domain.BucketEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("#3F3F46")),
		domain.BucketLow:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7F1D1D")),
		domain.BucketMid:   lipgloss.NewStyle().Foreground(lipgloss.Color("#B91C1C")),
		domain.BucketHigh:  lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
	}

	// Glyphs stay distinct when the terminal has no colour.
	bucketGlyphs = map[domain.Bucket]string{
		domain.BucketEmpty: "·",
		domain.BucketLow:   "░",
		domain.BucketMid:   "▒",
		domain.BucketHigh:  "█",
	}
)

var weekdayLabels = [7]string{"Sun", "", "Tue", "", "Thu", "", "Sat"}

func RenderHabits(snapshot domain.AppData, stats domain.Stats) string {
	var b strings.Builder

	header := fmt.Sprintf("Today · %s", stats.TodayLabel)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	for _, h := range snapshot.Habits {
		mark := pendingStyle.Render("[ ]")
		if h.Completed {
			mark = doneStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "%s %-10s %s\n", mark, h.ID, h.Name)
	}

	fmt.Fprintf(&b, "\n%s %d/%d  %s %d  %s %d\n",
		labelStyle.Render("done"), stats.CompletedToday, stats.TotalHabits,
		labelStyle.Render("streak"), stats.CurrentStreak,
		labelStyle.Render("best"), stats.MaxStreak)

	return b.String()
}

// RenderToggled is the one-line confirmation printed after a toggle.
func RenderToggled(habit domain.Habit, snapshot domain.AppData) string {
	for _, h := range snapshot.Habits {
		if h.ID == habit.ID && h.Completed {
			return doneStyle.Render("✓ " + habit.Name)
		}
	}
	return pendingStyle.Render("○ " + habit.Name + " (undone)")
}

func RenderStats(stats domain.Stats) string {
	rows := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Today          "), stats.TodayLabel),
		fmt.Sprintf("%s %d", labelStyle.Render("Current streak "), stats.CurrentStreak),
		fmt.Sprintf("%s %d", labelStyle.Render("Best streak    "), stats.MaxStreak),
		fmt.Sprintf("%s %d", labelStyle.Render("Active days    "), stats.TotalActiveDays),
		fmt.Sprintf("%s %d/%d", labelStyle.Render("Done today     "), stats.CompletedToday, stats.TotalHabits),
		fmt.Sprintf("%s %.1f%%", labelStyle.Render("Day elapsed    "), stats.DayProgress),
		fmt.Sprintf("%s %.1f%%", labelStyle.Render("Year elapsed   "), stats.YearProgress),
	}
	return boxStyle.Render(strings.Join(rows, "\n")) + "\n"
}

// RenderHeatmap draws the projection as a week-column grid, one row per
// weekday starting on Sunday.
func RenderHeatmap(hm domain.Heatmap) string {
	if len(hm.Cells) == 0 {
		return "no days to show\n"
	}

	weeks := (hm.LeadingBlanks + len(hm.Cells) + 6) / 7
	grid := make([][]string, 7)
	for row := range grid {
		grid[row] = make([]string, weeks)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}

	for i, cell := range hm.Cells {
		pos := hm.LeadingBlanks + i
		grid[pos%7][pos/7] = bucketStyles[cell.Bucket].Render(bucketGlyphs[cell.Bucket])
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s → %s", hm.Start, hm.End)))
	b.WriteString("\n\n")
	for row := range grid {
		fmt.Fprintf(&b, "%-4s%s\n", weekdayLabels[row], strings.Join(grid[row], ""))
	}

	b.WriteString("\n    less ")
	for _, bucket := range []domain.Bucket{domain.BucketEmpty, domain.BucketLow, domain.BucketMid, domain.BucketHigh} {
		b.WriteString(bucketStyles[bucket].Render(bucketGlyphs[bucket]))
	}
	b.WriteString(" more\n")

	return b.String()
}

func RenderCatalog(habits []domain.Habit) string {
	var b strings.Builder
	for _, h := range habits {
		fmt.Fprintf(&b, "%-10s %-28s %s\n", h.ID, h.Name, labelStyle.Render(h.Icon))
	}
	return b.String()
}
