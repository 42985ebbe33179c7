package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:00", want: TimeString("09:00")},
		{name: "valid evening", input: "21:30", want: TimeString("21:30")},
		{name: "midnight", input: "00:00", want: TimeString("00:00")},
		{name: "bare hour", input: "9", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_IsBefore(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("09:00")))
	// Строгое сравнение: равные значения не "раньше"
	assert.False(t, TimeString("09:00").IsBefore(TimeString("09:00")))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	got, err = TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// Переход через полночь не поддерживается
	_, err = TimeString("23:30").AddMinutes(60)
	require.Error(t, err)
}

func TestTimeString_Hour(t *testing.T) {
	hour, err := TimeString("14:00").Hour()
	require.NoError(t, err)
	assert.Equal(t, 14, hour)

	_, err = TimeString("bad").Hour()
	require.Error(t, err)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 1, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), ts)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("09:00:00"))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan([]byte("21:00:00")))
	assert.Equal(t, TimeString("21:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("13:00"), ts)
}
