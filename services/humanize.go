package services

import "time"

// FormatLastMessageTime renders a message timestamp relative to now: the time of
// day for today, the weekday name for earlier days of the current week (weeks
// start on Sunday) and an ISO date for anything older.
func FormatLastMessageTime(ts, now time.Time) string {
	ts = ts.In(now.Location())

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	ty, tm, td := ts.Date()
	if ty == y && tm == m && td == d {
		return ts.Format("15:04")
	}

	weekStart := today.AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)
	if !ts.Before(weekStart) && ts.Before(weekEnd) {
		return ts.Weekday().String()
	}
	return ts.Format("2006-01-02")
}
