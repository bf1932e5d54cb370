package resolve_policy

import (
	"sort"
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// scopedRuleSet pairs a rule set with the specificity of its scope in the
// bed's ancestor chain. A rule set on the bed itself outranks one on the
// room, which outranks the ward, and so on, regardless of priority.
type scopedRuleSet struct {
	rs          *domain.RuleSet
	specificity int
}

// resolveSegments is the deterministic merge at the heart of the engine.
// It partitions [from, to) at every candidate boundary, decides each
// sub-interval by precedence (specificity desc, priority desc, effective
// start desc, creation desc), then lets exceptions override their exact
// overlap, most recently created exception winning. Sub-intervals no rule
// covers are closed by default. The result is gap-free, non-overlapping and
// ordered; adjacent segments with an identical decision are merged.
func resolveSegments(
	from, to time.Time,
	loc *time.Location,
	candidates []scopedRuleSet,
	exceptions []*domain.RuleException,
) []domain.PolicySegment {
	ordered := orderCandidates(candidates)
	boundaries := collectBoundaries(from, to, loc, ordered, exceptions)

	segments := make([]domain.PolicySegment, 0, len(boundaries))
	for i := 0; i+1 < len(boundaries); i++ {
		segStart, segEnd := boundaries[i], boundaries[i+1]

		seg := decideBase(segStart, segEnd, loc, ordered)
		applyExceptions(&seg, exceptions)
		segments = append(segments, seg)
	}

	return mergeAdjacent(segments)
}

// orderCandidates sorts rule sets by the precedence order. The slice is
// copied: resolution never mutates its inputs.
func orderCandidates(candidates []scopedRuleSet) []scopedRuleSet {
	ordered := make([]scopedRuleSet, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.specificity != b.specificity {
			return a.specificity > b.specificity
		}
		if a.rs.Priority != b.rs.Priority {
			return a.rs.Priority > b.rs.Priority
		}
		if !a.rs.EffectiveFrom.Equal(b.rs.EffectiveFrom) {
			return a.rs.EffectiveFrom.After(b.rs.EffectiveFrom)
		}
		// Ties on overlapping windows resolve to the most recently created.
		return a.rs.CreatedAt.After(b.rs.CreatedAt)
	})

	return ordered
}

// collectBoundaries gathers every instant at which the decision may change:
// the interval bounds, each candidate's effective bounds, each candidate's
// hospital-local daily window bounds, and each exception's bounds. Returned
// sorted and de-duplicated, clamped to [from, to].
func collectBoundaries(
	from, to time.Time,
	loc *time.Location,
	candidates []scopedRuleSet,
	exceptions []*domain.RuleException,
) []time.Time {
	points := []time.Time{from, to}

	add := func(t time.Time) {
		if t.After(from) && t.Before(to) {
			points = append(points, t)
		}
	}

	for _, c := range candidates {
		add(c.rs.EffectiveFrom)
		if c.rs.EffectiveTo != nil {
			add(*c.rs.EffectiveTo)
		}
	}

	for _, e := range exceptions {
		add(e.StartsAt)
		add(e.EndsAt)
	}

	// Daily window boundaries, expanded per hospital-local day.
	localFrom := from.In(loc)
	dayStart := time.Date(localFrom.Year(), localFrom.Month(), localFrom.Day(), 0, 0, 0, 0, loc)
	for day := dayStart; day.Before(to); day = day.AddDate(0, 0, 1) {
		weekday := day.Weekday()
		for _, c := range candidates {
			for _, w := range c.rs.Payload.WindowsForWeekday(weekday) {
				add(instantAt(day, w.Start.String()))
				add(instantAt(day, w.End.String()))
			}
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })

	unique := points[:1]
	for _, p := range points[1:] {
		if !p.Equal(unique[len(unique)-1]) {
			unique = append(unique, p)
		}
	}
	return unique
}

// instantAt converts a hospital-local "HH:MM" on the given local midnight
// into an absolute instant. "24:00" maps to the next day's midnight. The
// instant is built as a wall-clock time in the hospital's location, not by
// adding a duration to midnight, so it stays correct on DST transition days
// where the two disagree.
func instantAt(dayStart time.Time, hhmm string) time.Time {
	if hhmm == domain.EndOfDayMarker {
		return time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day()+1, 0, 0, 0, 0, dayStart.Location())
	}
	h, m := parseHourMinute(hhmm)
	return time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), h, m, 0, 0, dayStart.Location())
}

func parseHourMinute(hhmm string) (int, int) {
	// Callers guarantee a validated "HH:MM" value.
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	return h, m
}

// decideBase decides a sub-interval from rule sets alone: the winning rule
// set is the first in precedence order whose effective window covers the
// sub-interval. Its payload windows then determine open or closed. No
// covering rule set means closed by default.
func decideBase(segStart, segEnd time.Time, loc *time.Location, ordered []scopedRuleSet) domain.PolicySegment {
	seg := domain.PolicySegment{Start: segStart, End: segEnd}

	for _, c := range ordered {
		if !c.rs.CoversInstant(segStart) {
			continue
		}

		seg.RuleSetID = &c.rs.ID
		if winStart, ok := coveringWindow(segStart, loc, &c.rs.Payload); ok {
			seg.Open = true
			seg.Capacity = c.rs.Payload.EffectiveCapacity()
			seg.SlotDurationMinutes = c.rs.Payload.SlotDuration()
			seg.RequiresApproval = c.rs.Payload.RequiresApproval
			seg.WindowStart = winStart
		}
		return seg
	}

	// Closed by default: not an error, and no provenance.
	return seg
}

// coveringWindow reports whether the instant falls inside one of the
// payload's visiting windows on its hospital-local day, and if so returns
// the window's start instant on that day. Window bounds are compared as
// absolute instants so the check holds on DST transition days.
func coveringWindow(t time.Time, loc *time.Location, payload *domain.RulePayload) (time.Time, bool) {
	local := t.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	for _, w := range payload.WindowsForWeekday(local.Weekday()) {
		start := instantAt(dayStart, w.Start.String())
		end := instantAt(dayStart, w.End.String())
		if !t.Before(start) && t.Before(end) {
			return start, true
		}
	}
	return time.Time{}, false
}

// applyExceptions overrides the base decision when an exception covers the
// segment. Among several covering exceptions the most recently created wins;
// this is a documented deterministic tie-break, not an error.
func applyExceptions(seg *domain.PolicySegment, exceptions []*domain.RuleException) {
	var winner *domain.RuleException
	for _, e := range exceptions {
		if !e.CoversInstant(seg.Start) {
			continue
		}
		if winner == nil ||
			e.CreatedAt.After(winner.CreatedAt) ||
			(e.CreatedAt.Equal(winner.CreatedAt) && e.ID > winner.ID) {
			winner = e
		}
	}

	if winner == nil {
		return
	}

	baseDuration := seg.SlotDurationMinutes
	seg.RuleSetID = nil
	seg.ExceptionID = &winner.ID

	switch winner.Kind {
	case domain.ExceptionBlackout:
		seg.Open = false
		seg.Capacity = 0
		seg.SlotDurationMinutes = 0
		seg.RequiresApproval = false
		seg.WindowStart = time.Time{}
	case domain.ExceptionExtraOpen:
		seg.Open = true
		seg.Capacity = winner.Capacity()
		if baseDuration > 0 {
			seg.SlotDurationMinutes = baseDuration
		} else {
			seg.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
		}
		seg.WindowStart = winner.StartsAt
	}
}

// mergeAdjacent collapses runs of contiguous segments carrying the same
// decision and provenance.
func mergeAdjacent(segments []domain.PolicySegment) []domain.PolicySegment {
	if len(segments) == 0 {
		return segments
	}

	merged := make([]domain.PolicySegment, 0, len(segments))
	current := segments[0]

	for _, seg := range segments[1:] {
		if current.End.Equal(seg.Start) && current.SameDecision(&seg) {
			current.End = seg.End
			continue
		}
		merged = append(merged, current)
		current = seg
	}

	return append(merged, current)
}
