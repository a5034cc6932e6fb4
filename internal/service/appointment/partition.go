package appointment

import "cloud.google.com/go/civil"

// Partition splits appointments into upcoming (date on or after today) and
// history (date before today). The split is a total disjoint cover: every
// record lands in exactly one bucket, and input order is preserved within
// each, so a date-descending input yields date-descending buckets.
func Partition(appts []Appointment, today civil.Date) (upcoming, history []Appointment) {
	for _, a := range appts {
		if a.Upcoming(today) {
			upcoming = append(upcoming, a)
		} else {
			history = append(history, a)
		}
	}
	return upcoming, history
}
