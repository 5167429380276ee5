// Package noonzone names the military timezone in which it is
// currently the noon hour. At UTC hour 12 that is ZULU itself; each
// hour earlier in the UTC day the noon meridian sits one zone east.
package noonzone

import "fmt"

// INDIA is omitted from the sequence; JULIET fills its hour.
var names = [24]string{
	0:  "MIKE",
	1:  "LIMA",
	2:  "KILO",
	3:  "JULIET",
	4:  "HOTEL",
	5:  "GOLF",
	6:  "FOXTROT",
	7:  "ECHO",
	8:  "DELTA",
	9:  "CHARLIE",
	10: "BRAVO",
	11: "ALPHA",
	12: "ZULU",
	13: "X-RAY",
	14: "WHISKEY",
	15: "VICTOR",
	16: "UNIFORM",
	17: "TANGO",
	18: "SIERRA",
	19: "ROMEO",
	20: "QUEBEC",
	21: "PAPA",
	22: "OSCAR",
	23: "NOVEMBER",
}

// Name returns the zone name for the given UTC hour-of-day.
func Name(utcHour int) string {
	if utcHour < 0 || utcHour > 23 {
		return "???"
	}
	return names[utcHour]
}

// Format renders the noon-zone line for a UTC instant as
// "NAME:MM:SS".
func Format(nowUTC int64) string {
	secondsOfDay := int(nowUTC % 86400)
	if secondsOfDay < 0 {
		secondsOfDay += 86400
	}
	return fmt.Sprintf("%s:%02d:%02d", Name(secondsOfDay/3600), secondsOfDay/60%60, secondsOfDay%60)
}
