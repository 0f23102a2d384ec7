// Package person contains the pure derivations computed from the submitted
// form fields. No clock access happens here; callers pass the reference time.
package person

import "time"

// Age returns the number of whole years between dob and ref.
// The year difference is decremented by one when the (month, day) pair of ref
// precedes that of dob, i.e. the birthday has not been reached yet in ref's
// year. February 29 needs no special case: on non-leap years the comparison
// against (2, 29) resolves the birthday to March 1.
func Age(dob, ref time.Time) int {
	age := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		age--
	}
	return age
}

// FullName joins the first and last name with a single space.
func FullName(first, last string) string {
	return first + " " + last
}
