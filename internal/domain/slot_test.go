package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCB-BookingService/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	t.Run("default window produces 16 slots", func(t *testing.T) {
		slots := GenerateSlots(DefaultOpenHour, DefaultCloseHour)
		require.Len(t, slots, 16)

		assert.Equal(t, types.TimeString("06:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("07:00"), slots[0].EndTime)
		assert.Equal(t, types.TimeString("21:00"), slots[15].StartTime)
		assert.Equal(t, types.TimeString("22:00"), slots[15].EndTime)
	})

	t.Run("slots are contiguous and ascending", func(t *testing.T) {
		slots := GenerateSlots(8, 12)
		require.Len(t, slots, 4)

		for i := 0; i < len(slots); i++ {
			assert.True(t, slots[i].StartTime.IsBefore(slots[i].EndTime))
			if i > 0 {
				assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
				assert.True(t, slots[i-1].StartTime.IsBefore(slots[i].StartTime))
			}
		}
	})

	t.Run("invalid windows produce empty grid", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(10, 10))
		assert.Empty(t, GenerateSlots(12, 10))
		assert.Empty(t, GenerateSlots(-1, 10))
		assert.Empty(t, GenerateSlots(6, 25))
	})
}
