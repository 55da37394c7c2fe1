package model

// Days and Times define the weekly scheduling grid. Every availability map
// in the pool is keyed by these exact strings.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var Times = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// DayIndex returns the position of day in the week, or -1.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// TimeIndex returns the position of time in the daily grid, or -1.
func TimeIndex(time string) int {
	for i, t := range Times {
		if t == time {
			return i
		}
	}
	return -1
}
