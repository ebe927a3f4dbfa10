package utils_test

import (
	"testing"

	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestValidateShiftTimes(t *testing.T) {
	tests := map[string]struct {
		start   string
		end     string
		wantErr bool
	}{
		"plain day shift":        {"09:00:00", "17:00:00", false},
		"overnight shift":        {"22:00:00", "06:00:00", false},
		"bad start format":       {"9am", "17:00:00", true},
		"bad end format":         {"09:00:00", "25:00:00", true},
		"zero length":            {"09:00:00", "09:00:00", true},
		"minutes only, no colon": {"0900", "1700", true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := utils.ValidateShiftTimes(&domain.Shift{StartTime: tt.start, EndTime: tt.end})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAvailability(t *testing.T) {
	valid := map[string][]domain.TimeRange{
		"monday": {{Start: "08:00:00", End: "18:00:00"}},
		"friday": {{Start: "08:00:00", End: "12:00:00"}, {Start: "13:00:00", End: "18:00:00"}},
	}
	assert.NoError(t, utils.ValidateAvailability(valid))
	assert.NoError(t, utils.ValidateAvailability(map[string][]domain.TimeRange{}))

	assert.Error(t, utils.ValidateAvailability(map[string][]domain.TimeRange{
		"funday": {{Start: "08:00:00", End: "18:00:00"}},
	}), "unknown weekday key")

	assert.Error(t, utils.ValidateAvailability(map[string][]domain.TimeRange{
		"monday": {{Start: "8:00", End: "18:00:00"}},
	}), "malformed window start")

	assert.Error(t, utils.ValidateAvailability(map[string][]domain.TimeRange{
		"monday": {{Start: "08:00:00", End: "08:00:00"}},
	}), "zero-length window")
}
