package feed

import "time"

const dateLayout = "2006-01-02"

// ResolveDateWindow turns the temporal filter parameters into concrete
// creation-time bounds. A named bucket wins over createdDays, and both win
// over the explicit gt/lt pair. Bounds are half-open: Gt inclusive, Lt
// exclusive, so an inclusive calendar date upper bound becomes the start of
// the following day. Weeks start on Monday.
func ResolveDateWindow(createdDate string, createdDays int, gtStr, ltStr string, now time.Time) DateWindow {
	if createdDate != "" || createdDays > 0 {
		return bucketWindow(createdDate, createdDays, now)
	}

	var w DateWindow
	if gtStr != "" {
		if t, err := time.ParseInLocation(dateLayout, gtStr, now.Location()); err == nil {
			w.Gt = &t
		}
	}
	if ltStr != "" {
		if t, err := time.ParseInLocation(dateLayout, ltStr, now.Location()); err == nil {
			end := t.AddDate(0, 0, 1)
			w.Lt = &end
		}
	}
	return w
}

func bucketWindow(createdDate string, createdDays int, now time.Time) DateWindow {
	day := startOfDay(now)

	var gt, lt time.Time
	switch createdDate {
	case "today":
		gt, lt = day, day.AddDate(0, 0, 1)
	case "yesterday":
		gt, lt = day.AddDate(0, 0, -1), day
	case "week":
		gt = startOfWeek(day)
		lt = gt.AddDate(0, 0, 7)
	case "lastWeek":
		lt = startOfWeek(day)
		gt = lt.AddDate(0, 0, -7)
	case "month":
		gt = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		lt = gt.AddDate(0, 1, 0)
	case "lastMonth":
		lt = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		gt = lt.AddDate(0, -1, 0)
	case "year":
		gt = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		lt = gt.AddDate(1, 0, 0)
	case "lastYear":
		lt = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		gt = lt.AddDate(-1, 0, 0)
	default:
		days := createdDays
		if days < 1 {
			days = 1
		}
		gt = day.AddDate(0, 0, -days)
		return DateWindow{Gt: &gt}
	}

	return DateWindow{Gt: &gt, Lt: &lt}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(day time.Time) time.Time {
	weekday := int(day.Weekday())
	// time.Sunday is 0; shift so the week starts on Monday.
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}
