package regenerate_slots

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	regenerateSlots "github.com/vkotelnikov/HVS-VisitService/internal/usecase/regenerate_slots"
)

// RegenerateSlotsRequest HTTP request model
type RegenerateSlotsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RegenerateSlotsResponse HTTP response model
type RegenerateSlotsResponse struct {
	UnitID       int64 `json:"unitId"`
	BedsAffected int   `json:"bedsAffected"`
	SlotsDeleted int64 `json:"slotsDeleted"`
	Candidates   int   `json:"candidates"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *RegenerateSlotsRequest) ToUseCaseRequest(unitID int64) (*regenerateSlots.Request, error) {
	from, err := parseInstant(r.From)
	if err != nil {
		return nil, err
	}

	to, err := parseInstant(r.To)
	if err != nil {
		return nil, err
	}

	return &regenerateSlots.Request{
		UnitID: unitID,
		From:   from,
		To:     to,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *regenerateSlots.Response) *RegenerateSlotsResponse {
	return &RegenerateSlotsResponse{
		UnitID:       resp.UnitID,
		BedsAffected: resp.BedsAffected,
		SlotsDeleted: resp.SlotsDeleted,
		Candidates:   resp.Candidates,
	}
}

func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(domain.InstantFormat, s)
}
