package calendar

import (
	"fmt"
	"time"
)

// EasterSunday computes Easter Sunday for the given Gregorian year using
// the anonymous Gregorian (Gaussian) algorithm. Valid for years >= 1583.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// HolidaysForYear returns the nine German national holidays of a year,
// keyed by ISO date string. Five are fixed dates, four derive from Easter
// Sunday (Good Friday, Easter Monday, Ascension, Whit Monday).
func HolidaysForYear(year int) map[string]string {
	holidays := map[string]string{
		fmt.Sprintf("%d-01-01", year): "Neujahr",
		fmt.Sprintf("%d-05-01", year): "Tag der Arbeit",
		fmt.Sprintf("%d-10-03", year): "Tag der Deutschen Einheit",
		fmt.Sprintf("%d-12-25", year): "1. Weihnachtstag",
		fmt.Sprintf("%d-12-26", year): "2. Weihnachtstag",
	}

	easter := EasterSunday(year)
	add := func(d time.Time, name string) {
		key := d.Format(DateFormat)
		// Ascension lands on May 1 whenever Easter is March 23; keep both
		// names under the shared key instead of overwriting.
		if existing, ok := holidays[key]; ok {
			holidays[key] = existing + " / " + name
			return
		}
		holidays[key] = name
	}
	add(easter.AddDate(0, 0, -2), "Karfreitag")
	add(easter.AddDate(0, 0, 1), "Ostermontag")
	add(easter.AddDate(0, 0, 39), "Christi Himmelfahrt")
	add(easter.AddDate(0, 0, 50), "Pfingstmontag")

	return holidays
}
