package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("24:00")
	assert.Error(t, err, "24:00 is a marker, not a parseable wall-clock time")
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("13:45")
	m, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, m)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("23:00")

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:30"), got)

	got, err = ts.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got, "exact end of day is allowed")

	_, err = ts.AddMinutes(90)
	assert.Error(t, err, "crossing midnight is the caller's problem")
}

func TestTimeString_JSON(t *testing.T) {
	type doc struct {
		At TimeString `json:"at"`
	}

	data, err := json.Marshal(doc{At: "08:15"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"08:15"}`, string(data))

	var out doc
	require.NoError(t, json.Unmarshal([]byte(`{"at":"24:00"}`), &out))
	assert.Equal(t, TimeString("24:00"), out.At)

	assert.Error(t, json.Unmarshal([]byte(`{"at":"garbage"}`), &out))
}

func TestTimeString_IsBefore(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:00").IsBefore("24:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}
