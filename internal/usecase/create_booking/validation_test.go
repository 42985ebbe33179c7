package create_booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/pkg/types"
)

func TestNormalizeSlots(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []SlotInput
		want    []domain.Slot
		wantErr error
	}{
		{
			name:   "bare hour without leading zero",
			inputs: []SlotInput{{StartTime: "9"}},
			want: []domain.Slot{
				{StartTime: "09:00", EndTime: "10:00"},
			},
		},
		{
			name:   "bare hour with leading zero",
			inputs: []SlotInput{{StartTime: "09"}},
			want: []domain.Slot{
				{StartTime: "09:00", EndTime: "10:00"},
			},
		},
		{
			name:   "explicit pair",
			inputs: []SlotInput{{StartTime: "09:00", EndTime: "10:00"}},
			want: []domain.Slot{
				{StartTime: "09:00", EndTime: "10:00"},
			},
		},
		{
			name:   "start time only, end derived",
			inputs: []SlotInput{{StartTime: "14:00"}},
			want: []domain.Slot{
				{StartTime: "14:00", EndTime: "15:00"},
			},
		},
		{
			name: "mixed forms sorted by start time",
			inputs: []SlotInput{
				{StartTime: "11:00", EndTime: "12:00"},
				{StartTime: "9"},
				{StartTime: "10:00"},
			},
			want: []domain.Slot{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "10:00", EndTime: "11:00"},
				{StartTime: "11:00", EndTime: "12:00"},
			},
		},
		{
			name:    "duplicate slot across forms",
			inputs:  []SlotInput{{StartTime: "09"}, {StartTime: "09:00", EndTime: "10:00"}},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "not on the hour",
			inputs:  []SlotInput{{StartTime: "09:30"}},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "end is not start plus one hour",
			inputs:  []SlotInput{{StartTime: "09:00", EndTime: "11:00"}},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "hour out of range",
			inputs:  []SlotInput{{StartTime: "25"}},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "empty start",
			inputs:  []SlotInput{{StartTime: ""}},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "garbage",
			inputs:  []SlotInput{{StartTime: "abc"}},
			wantErr: ErrInvalidSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeSlots(tt.inputs)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		n     int
		want  []int64
	}{
		{name: "even split", total: 1000, n: 2, want: []int64{500, 500}},
		{name: "remainder goes to first slots", total: 1000, n: 3, want: []int64{334, 333, 333}},
		{name: "single slot", total: 500, n: 1, want: []int64{500}},
		{name: "remainder of two", total: 101, n: 3, want: []int64{34, 34, 33}},
		{name: "total smaller than n", total: 2, n: 3, want: []int64{1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAmount(tt.total, tt.n)
			assert.Equal(t, tt.want, got)

			// Сумма долей всегда точно равна исходной сумме
			var sum int64
			for _, a := range got {
				sum += a
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

func TestValidateSlotsInWindow(t *testing.T) {
	court := &domain.Court{OpenHour: 6, CloseHour: 22}

	require.NoError(t, validateSlotsInWindow(court, []domain.Slot{
		{StartTime: types.TimeString("06:00"), EndTime: types.TimeString("07:00")},
		{StartTime: types.TimeString("21:00"), EndTime: types.TimeString("22:00")},
	}))

	// Слот, начинающийся в час закрытия, вне окна
	err := validateSlotsInWindow(court, []domain.Slot{
		{StartTime: types.TimeString("22:00"), EndTime: types.TimeString("23:00")},
	})
	require.ErrorIs(t, err, ErrSlotOutsideWindow)

	err = validateSlotsInWindow(court, []domain.Slot{
		{StartTime: types.TimeString("05:00"), EndTime: types.TimeString("06:00")},
	})
	require.ErrorIs(t, err, ErrSlotOutsideWindow)
}
