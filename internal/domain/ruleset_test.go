package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkotelnikov/HVS-VisitService/pkg/types"
)

func TestRulePayload_DecodeIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"windows": [{"weekdays": [6, 0], "start": "10:00", "end": "12:00"}],
		"slotDurationMinutes": 20,
		"capacity": 3,
		"requiresApproval": true,
		"futureField": {"nested": true}
	}`

	var p RulePayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, 20, p.SlotDurationMinutes)
	assert.Equal(t, 3, p.Capacity)
	assert.True(t, p.RequiresApproval)
	require.Len(t, p.Windows, 1)
	assert.Equal(t, types.TimeString("10:00"), p.Windows[0].Start)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, p.Windows[0].Weekdays)
}

func TestRulePayload_Defaults(t *testing.T) {
	p := RulePayload{}
	assert.Equal(t, DefaultSlotDurationMinutes, p.SlotDuration())
	assert.Equal(t, DefaultSlotCapacity, p.EffectiveCapacity())

	p = RulePayload{SlotDurationMinutes: 45, Capacity: 2}
	assert.Equal(t, 45, p.SlotDuration())
	assert.Equal(t, 2, p.EffectiveCapacity())
}

func TestRulePayload_WindowsForWeekday(t *testing.T) {
	p := RulePayload{Windows: []VisitWindow{
		{Start: "08:00", End: "10:00"}, // no weekdays = every day
		{Weekdays: []time.Weekday{time.Monday}, Start: "18:00", End: "20:00"},
	}}

	monday := p.WindowsForWeekday(time.Monday)
	require.Len(t, monday, 2)

	tuesday := p.WindowsForWeekday(time.Tuesday)
	require.Len(t, tuesday, 1)
	assert.Equal(t, types.TimeString("08:00"), tuesday[0].Start)
}

func TestVisitWindow_Validate(t *testing.T) {
	tests := []struct {
		name    string
		window  VisitWindow
		wantErr bool
	}{
		{"valid window", VisitWindow{Start: "10:00", End: "12:00"}, false},
		{"end of day marker", VisitWindow{Start: "22:00", End: "24:00"}, false},
		{"end equals start", VisitWindow{Start: "10:00", End: "10:00"}, true},
		{"end before start", VisitWindow{Start: "12:00", End: "10:00"}, true},
		{"bad start", VisitWindow{Start: "25:00", End: "26:00"}, true},
		{"bad end", VisitWindow{Start: "10:00", End: "10:61"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRuleSet_CoversInstant(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	openEnded := &RuleSet{EffectiveFrom: from}
	assert.True(t, openEnded.CoversInstant(from))
	assert.True(t, openEnded.CoversInstant(to.AddDate(1, 0, 0)))
	assert.False(t, openEnded.CoversInstant(from.Add(-time.Second)))

	bounded := &RuleSet{EffectiveFrom: from, EffectiveTo: &to}
	assert.True(t, bounded.CoversInstant(to.Add(-time.Second)))
	assert.False(t, bounded.CoversInstant(to), "effective_to is exclusive")
}

func TestRuleException_Capacity(t *testing.T) {
	two := 2
	zero := 0

	assert.Equal(t, 2, (&RuleException{OverrideCapacity: &two}).Capacity())
	assert.Equal(t, DefaultSlotCapacity, (&RuleException{}).Capacity())
	assert.Equal(t, DefaultSlotCapacity, (&RuleException{OverrideCapacity: &zero}).Capacity())
}
