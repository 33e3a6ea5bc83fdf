// Package dates holds date arithmetic shared by curve templates and the
// scenario engine.
package dates

import (
	"sort"
	"time"
)

// Sort sorts a slice of time.Time in ascending order.
func Sort(ds []time.Time) {
	sort.Slice(ds, func(i, j int) bool {
		return ds[i].Before(ds[j])
	})
}

// AddMonths behaves like Excel's EDATE, avoiding Go's month normalization surprises.
//
// Jan 31 + 1M yields Feb 28/29 rather than Mar 2/3.
func AddMonths(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if target.Month() == t.AddDate(0, months, 0).Month() {
		return t.AddDate(0, months, 0)
	}

	d := t.AddDate(0, months, 0)
	origMonth := d.Month()
	for d.Month() == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
