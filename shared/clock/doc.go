// Package clock provides time-of-day values used by the booking calendar.
//
// Usage Examples:
//
//  1. Parsing labels entered by users:
//     start, err := clock.Parse("2:00 PM")   // 840
//     end, err := clock.Parse("15:30")       // 930
//     end, err := clock.ParseEnd("12:00 AM") // 1440, midnight closing the day
//
//  2. Building half-open ranges and checking overlap:
//     rng, err := clock.NewRange(start, end)
//     rng.Overlaps(other)
//
//  3. Parsing a whole range:
//     rng, err := clock.ParseRange("10:00 AM - 11:00 AM")
//
// Times are normalized to minutes since midnight so that "9:00 AM" sorts before
// "10:00 AM". Ranges include their start and exclude their end; two ranges that
// only touch (one ends when the other starts) do not overlap.
package clock
