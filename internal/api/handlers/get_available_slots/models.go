package get_available_slots

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	getAvailableSlots "github.com/vkotelnikov/HVS-VisitService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	BedID int64          `json:"bedId"`
	From  string         `json:"from"`
	To    string         `json:"to"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse is one bookable slot with its remaining capacity.
type SlotResponse struct {
	ID               int64  `json:"id"`
	StartsAt         string `json:"startsAt"`
	EndsAt           string `json:"endsAt"`
	Status           string `json:"status"`
	Capacity         int    `json:"capacity"`
	AvailableSpots   int    `json:"availableSpots"`
	RequiresApproval bool   `json:"requiresApproval"`
	RuleSetID        *int64 `json:"ruleSetId,omitempty"`
	ExceptionID      *int64 `json:"exceptionId,omitempty"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:               s.ID,
			StartsAt:         s.StartsAt.Format(time.RFC3339),
			EndsAt:           s.EndsAt.Format(time.RFC3339),
			Status:           string(s.Status),
			Capacity:         s.Capacity,
			AvailableSpots:   s.AvailableSpots,
			RequiresApproval: s.RequiresApproval,
			RuleSetID:        s.RuleSetID,
			ExceptionID:      s.ExceptionID,
		})
	}

	return &SlotsResponse{
		BedID: resp.BedID,
		From:  resp.From.Format(time.RFC3339),
		To:    resp.To.Format(time.RFC3339),
		Slots: slots,
	}
}

// ParseInstant accepts RFC3339 or a naive local instant (treated as UTC).
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(domain.InstantFormat, s)
}
