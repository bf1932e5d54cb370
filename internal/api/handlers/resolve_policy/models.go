package resolve_policy

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	resolvePolicy "github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
)

// PolicyResponse HTTP response model
type PolicyResponse struct {
	BedID    int64             `json:"bedId"`
	Timezone string            `json:"timezone"`
	From     string            `json:"from"`
	To       string            `json:"to"`
	Segments []SegmentResponse `json:"segments"`
}

// SegmentResponse is one sub-interval of the effective policy.
type SegmentResponse struct {
	Start               string `json:"start"`
	End                 string `json:"end"`
	Open                bool   `json:"open"`
	Capacity            int    `json:"capacity,omitempty"`
	SlotDurationMinutes int    `json:"slotDurationMinutes,omitempty"`
	RequiresApproval    bool   `json:"requiresApproval"`
	RuleSetID           *int64 `json:"ruleSetId,omitempty"`
	ExceptionID         *int64 `json:"exceptionId,omitempty"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *resolvePolicy.Response) *PolicyResponse {
	segments := make([]SegmentResponse, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, SegmentResponse{
			Start:               seg.Start.Format(time.RFC3339),
			End:                 seg.End.Format(time.RFC3339),
			Open:                seg.Open,
			Capacity:            seg.Capacity,
			SlotDurationMinutes: seg.SlotDurationMinutes,
			RequiresApproval:    seg.RequiresApproval,
			RuleSetID:           seg.RuleSetID,
			ExceptionID:         seg.ExceptionID,
		})
	}

	return &PolicyResponse{
		BedID:    resp.BedID,
		Timezone: resp.Timezone,
		From:     resp.From.Format(time.RFC3339),
		To:       resp.To.Format(time.RFC3339),
		Segments: segments,
	}
}

// ParseInstant accepts RFC3339 or a naive local instant (treated as UTC).
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(domain.InstantFormat, s)
}
