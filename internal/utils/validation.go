package utils

import (
	"fmt"
	"slices"
	"time"

	"github.com/shiftguard/backend/internal/domain"
)

var weekdayKeys = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func validClock(value string) bool {
	_, err := time.Parse("15:04:05", value)
	return err == nil
}

// ValidateShiftTimes checks the wall-clock format of a shift's times. An end
// time numerically before the start time is legal and means the shift runs
// past midnight, so no ordering check is done here.
func ValidateShiftTimes(shift *domain.Shift) error {
	if !validClock(shift.StartTime) {
		return fmt.Errorf("start time %q is not in HH:MM:SS format", shift.StartTime)
	}
	if !validClock(shift.EndTime) {
		return fmt.Errorf("end time %q is not in HH:MM:SS format", shift.EndTime)
	}
	if shift.StartTime == shift.EndTime {
		return fmt.Errorf("start and end time must differ")
	}
	return nil
}

// ValidateAvailability checks weekday keys and window formats of a declared
// availability map.
func ValidateAvailability(availability map[string][]domain.TimeRange) error {
	for day, windows := range availability {
		if !slices.Contains(weekdayKeys, day) {
			return fmt.Errorf("unknown weekday %q", day)
		}
		for i, window := range windows {
			if !validClock(window.Start) {
				return fmt.Errorf("window %d on %s: start time %q is not in HH:MM:SS format", i, day, window.Start)
			}
			if !validClock(window.End) {
				return fmt.Errorf("window %d on %s: end time %q is not in HH:MM:SS format", i, day, window.End)
			}
			if window.Start == window.End {
				return fmt.Errorf("window %d on %s: start and end must differ", i, day)
			}
		}
	}
	return nil
}
