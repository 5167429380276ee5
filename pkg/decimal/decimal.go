// Package decimal implements French Revolutionary decimal time: ten
// hours of one hundred minutes of one hundred seconds, 100000 decimal
// seconds per day.
package decimal

import "fmt"

const (
	daySeconds        = 86400
	decimalDaySeconds = 100_000
)

// Time returns the decimal hour, minute and second for a UTC instant.
func Time(nowUTC int64) (hour, minute, second int) {
	secondsOfDay := nowUTC % daySeconds
	if secondsOfDay < 0 {
		secondsOfDay += daySeconds
	}
	total := uint64(secondsOfDay) * decimalDaySeconds / daySeconds
	return int(total / 10_000), int(total / 100 % 100), int(total % 100)
}

// Format renders decimal time as "H:MM:SS".
func Format(nowUTC int64) string {
	h, m, s := Time(nowUTC)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
