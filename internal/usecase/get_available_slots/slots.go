package get_available_slots

import (
	"fmt"
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// generateCandidates cuts each open policy segment into fixed-length slot
// candidates of the segment's slot duration. The grid is anchored at the
// segment's producing window start, not at the possibly range-clamped
// segment start, so overlapping requested ranges always yield identical
// slot boundaries. A candidate that would cross the segment end is dropped
// rather than shortened, so slot boundaries always respect policy
// boundaries. Candidates starting before notBefore (already past) are
// skipped: history is never materialized retroactively.
func generateCandidates(bedID int64, segments []domain.PolicySegment, notBefore time.Time) []*domain.VisitSlot {
	candidates := make([]*domain.VisitSlot, 0)

	for _, seg := range segments {
		if !seg.Open || seg.SlotDurationMinutes <= 0 {
			continue
		}

		step := time.Duration(seg.SlotDurationMinutes) * time.Minute
		for start := alignToGrid(seg, step); ; start = start.Add(step) {
			end := start.Add(step)
			if end.After(seg.End) {
				break
			}
			if start.Before(notBefore) {
				continue
			}

			candidates = append(candidates, &domain.VisitSlot{
				BedID:            bedID,
				StartsAt:         start,
				EndsAt:           end,
				Status:           domain.SlotOpen,
				Capacity:         seg.Capacity,
				RequiresApproval: seg.RequiresApproval,
				RuleSetID:        seg.RuleSetID,
				ExceptionID:      seg.ExceptionID,
			})
		}
	}

	return candidates
}

// alignToGrid returns the first instant at or after the segment start that
// sits on the slot grid anchored at the segment's window start. Segments
// without a window anchor keep their own start.
func alignToGrid(seg domain.PolicySegment, step time.Duration) time.Time {
	if seg.WindowStart.IsZero() || !seg.WindowStart.Before(seg.Start) {
		return seg.Start
	}
	if rem := seg.Start.Sub(seg.WindowStart) % step; rem != 0 {
		return seg.Start.Add(step - rem)
	}
	return seg.Start
}

// validatePartition checks the resolver's output invariant: segments must
// partition [from, to) exactly, ordered, without gaps or overlaps.
func validatePartition(from, to time.Time, segments []domain.PolicySegment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty partition", ErrPolicyConflict)
	}
	if !segments[0].Start.Equal(from) {
		return fmt.Errorf("%w: partition starts at %s, want %s", ErrPolicyConflict, segments[0].Start, from)
	}
	for i := 0; i+1 < len(segments); i++ {
		if !segments[i].End.Equal(segments[i+1].Start) {
			return fmt.Errorf("%w: gap or overlap at %s", ErrPolicyConflict, segments[i].End)
		}
	}
	if !segments[len(segments)-1].End.Equal(to) {
		return fmt.Errorf("%w: partition ends at %s, want %s", ErrPolicyConflict, segments[len(segments)-1].End, to)
	}
	return nil
}
