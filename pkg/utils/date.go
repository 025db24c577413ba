package utils

import (
	"fmt"
	"time"
)

var locationBRT = loadLocation("America/Sao_Paulo")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

// TimeNowBRT returns the current time in Brasília time.
func TimeNowBRT() time.Time {
	return time.Now().In(locationBRT)
}

// DaysBetween returns the fractional number of days from a to b.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// PrettyDate formats t in Brasília time for notifications, e.g. "Seg, 02 Jan 2006 15:04 BRT".
func PrettyDate(t time.Time) string {
	local := t.In(locationBRT)
	return fmt.Sprintf("%s, %s BRT", weekdaysPT[local.Weekday()], local.Format("02 Jan 2006 15:04"))
}

var weekdaysPT = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}
