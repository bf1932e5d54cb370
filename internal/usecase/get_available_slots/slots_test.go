package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/pkg/ptr"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestGenerateCandidates_CutsOpenSegments(t *testing.T) {
	ruleSetID := ptr.Ptr(int64(7))
	segments := []domain.PolicySegment{
		{Start: at(8, 0), End: at(10, 0), Open: false},
		{
			Start: at(10, 0), End: at(12, 0),
			Open: true, Capacity: 2, SlotDurationMinutes: 30, RequiresApproval: true,
			RuleSetID: ruleSetID,
		},
	}

	candidates := generateCandidates(5, segments, at(0, 0))

	require.Len(t, candidates, 4, "closed segments yield nothing, 2h / 30min = 4")
	first := candidates[0]
	assert.Equal(t, int64(5), first.BedID)
	assert.True(t, first.StartsAt.Equal(at(10, 0)))
	assert.True(t, first.EndsAt.Equal(at(10, 30)))
	assert.Equal(t, domain.SlotOpen, first.Status)
	assert.Equal(t, 2, first.Capacity)
	assert.True(t, first.RequiresApproval)
	assert.Equal(t, int64(7), *first.RuleSetID)

	last := candidates[3]
	assert.True(t, last.EndsAt.Equal(at(12, 0)))
}

func TestGenerateCandidates_DropsCrossingRemainder(t *testing.T) {
	segments := []domain.PolicySegment{
		{Start: at(10, 0), End: at(11, 15), Open: true, Capacity: 1, SlotDurationMinutes: 30},
	}

	candidates := generateCandidates(5, segments, at(0, 0))

	require.Len(t, candidates, 2, "the 11:00-11:30 candidate would cross the segment end")
	assert.True(t, candidates[1].EndsAt.Equal(at(11, 0)))
}

func TestGenerateCandidates_SkipsPastStarts(t *testing.T) {
	segments := []domain.PolicySegment{
		{Start: at(10, 0), End: at(12, 0), Open: true, Capacity: 1, SlotDurationMinutes: 30},
	}

	candidates := generateCandidates(5, segments, at(10, 45))

	require.Len(t, candidates, 2)
	assert.True(t, candidates[0].StartsAt.Equal(at(11, 0)), "slots already started are not materialized")
}

func TestGenerateCandidates_ClampedSegmentKeepsWindowGrid(t *testing.T) {
	full := []domain.PolicySegment{
		{Start: at(10, 0), End: at(12, 0), Open: true, Capacity: 1, SlotDurationMinutes: 30, WindowStart: at(10, 0)},
	}
	clamped := []domain.PolicySegment{
		{Start: at(10, 15), End: at(12, 0), Open: true, Capacity: 1, SlotDurationMinutes: 30, WindowStart: at(10, 0)},
	}

	fullSlots := generateCandidates(5, full, at(0, 0))
	clampedSlots := generateCandidates(5, clamped, at(0, 0))

	// A range cut mid-window must produce a subset of the full window's
	// slots, never shifted duplicates that overlap them.
	require.Len(t, fullSlots, 4)
	require.Len(t, clampedSlots, 3)
	assert.True(t, clampedSlots[0].StartsAt.Equal(at(10, 30)),
		"first slot aligns to the window grid, got %s", clampedSlots[0].StartsAt)
	for i, s := range clampedSlots {
		assert.True(t, s.StartsAt.Equal(fullSlots[i+1].StartsAt))
		assert.True(t, s.EndsAt.Equal(fullSlots[i+1].EndsAt))
	}
}

func TestGenerateCandidates_SegmentOnGridStartsImmediately(t *testing.T) {
	segments := []domain.PolicySegment{
		{Start: at(11, 0), End: at(12, 0), Open: true, Capacity: 1, SlotDurationMinutes: 30, WindowStart: at(10, 0)},
	}

	candidates := generateCandidates(5, segments, at(0, 0))

	require.Len(t, candidates, 2)
	assert.True(t, candidates[0].StartsAt.Equal(at(11, 0)), "a start already on the grid is kept")
}

func TestValidatePartition(t *testing.T) {
	from, to := at(8, 0), at(12, 0)

	valid := []domain.PolicySegment{
		{Start: at(8, 0), End: at(10, 0)},
		{Start: at(10, 0), End: at(12, 0)},
	}
	assert.NoError(t, validatePartition(from, to, valid))

	gap := []domain.PolicySegment{
		{Start: at(8, 0), End: at(9, 0)},
		{Start: at(10, 0), End: at(12, 0)},
	}
	assert.ErrorIs(t, validatePartition(from, to, gap), ErrPolicyConflict)

	shortEnd := []domain.PolicySegment{
		{Start: at(8, 0), End: at(11, 0)},
	}
	assert.ErrorIs(t, validatePartition(from, to, shortEnd), ErrPolicyConflict)

	assert.ErrorIs(t, validatePartition(from, to, nil), ErrPolicyConflict)
}
