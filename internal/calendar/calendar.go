// Package calendar produces the bookable value domain: the rolling set of
// open business days and the fixed grid of 20-minute consultation slots.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultWindow is how many calendar days past the reference date are
// scanned for open weekdays.
const DefaultWindow = 12

// Day is one bookable date: a sortable key and a localized display label.
type Day struct {
	Key   string `json:"key"`   // YYYY-MM-DD
	Label string `json:"label"` // e.g. "lundi 10 juin 2024"
}

// Slot is one bookable time range within a day.
type Slot struct {
	Key   string `json:"key"`   // e.g. "09:00-09:20"
	Label string `json:"label"` // e.g. "9h - 9h20"
}

// Locale carries the day and month names used for display labels. It is
// passed explicitly; there is no process-wide locale state.
type Locale struct {
	Days   [7]string  // indexed by time.Weekday (Sunday = 0)
	Months [13]string // 1-based
}

var French = Locale{
	Days: [7]string{
		"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
	},
	Months: [13]string{
		"", "janvier", "février", "mars", "avril", "mai", "juin", "juillet",
		"août", "septembre", "octobre", "novembre", "décembre",
	},
}

// FormatFull renders a date in the full locale form, e.g. "lundi 10 juin 2024".
func (l Locale) FormatFull(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", l.Days[t.Weekday()], t.Day(), l.Months[t.Month()], t.Year())
}

// BusinessDays scans the window calendar days strictly after ref and returns
// the weekdays (Monday-Friday) in ascending order. The result defines the
// legal Appointment date domain at the moment it is computed; stored
// appointments whose date has since rolled out of the window remain valid
// historical records.
func BusinessDays(ref time.Time, window int, loc Locale) []Day {
	if window <= 0 {
		window = DefaultWindow
	}
	days := make([]Day, 0, window)
	for i := 1; i <= window; i++ {
		d := ref.AddDate(0, 0, i)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, Day{Key: d.Format("2006-01-02"), Label: loc.FormatFull(d)})
	}
	return days
}

// ContainsDay reports whether key is one of the generated days.
func ContainsDay(days []Day, key string) bool {
	for _, d := range days {
		if d.Key == key {
			return true
		}
	}
	return false
}

// The slot grid: 20-minute slots every half hour from 09:00, last start
// 16:30, with the 13:00-13:30 lunch break skipped.
const (
	openingMinute = 9 * 60
	lastStart     = 16*60 + 30
	lunchStart    = 13 * 60
	slotMinutes   = 20
)

var slots = buildSlots()

func buildSlots() []Slot {
	var out []Slot
	for m := openingMinute; m <= lastStart; m += 30 {
		if m == lunchStart {
			continue
		}
		out = append(out, Slot{
			Key:   fmt.Sprintf("%s-%s", clockKey(m), clockKey(m+slotMinutes)),
			Label: fmt.Sprintf("%s - %s", clockLabel(m), clockLabel(m+slotMinutes)),
		})
	}
	return out
}

func clockKey(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// clockLabel renders the short French clock form: 9h, 9h30.
func clockLabel(m int) string {
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02d", m/60, m%60)
}

// Slots returns the fixed slot grid. Callers must not mutate the result.
func Slots() []Slot {
	return slots
}

// ValidSlot reports whether key is one of the fixed slot keys.
func ValidSlot(key string) bool {
	for _, s := range slots {
		if s.Key == key {
			return true
		}
	}
	return false
}

var errBadSlot = errors.New("calendar: malformed slot key")

// SlotStart parses the start of a slot key, returning hour and minute.
func SlotStart(key string) (hour, min int, err error) {
	start, _, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, errBadSlot
	}
	t, err := time.Parse("15:04", start)
	if err != nil {
		return 0, 0, errBadSlot
	}
	return t.Hour(), t.Minute(), nil
}
