package schedule

// StopEndDate computes the narrowed end date for a "stop from this date
// forward" request: the day before stopDate. The second return value is
// false when the rule already ends earlier, in which case the current end
// must be kept (narrowing is monotonic; a later stop never widens a rule).
// ISO dates compare correctly as strings.
func StopEndDate(currentEnd *string, stopDate string) (string, bool, error) {
	day, err := ParseDate(stopDate)
	if err != nil {
		return "", false, err
	}
	newEnd := FormatDate(day.AddDate(0, 0, -1))
	if currentEnd != nil && *currentEnd != "" && *currentEnd < newEnd {
		return *currentEnd, false, nil
	}
	return newEnd, true, nil
}
