// Package timezone holds the application location set by APP_TIMEZONE.
//
// Timestamps (created_at, modified_at) are rendered in that location. Booking dates are
// calendar days and are carried as midnight UTC; Today and DateOf produce that form so a
// day picked in the application location compares equal to a parsed YYYY-MM-DD value.
//
// Use IANA names such as "UTC", "Asia/Jakarta" or "Europe/London". Unknown names fall back to UTC.
package timezone
