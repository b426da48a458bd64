package response

import (
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	HourlyRate  string    `json:"hourly_rate"`
	Available   bool      `json:"available"`
	SlotMinutes int       `json:"slot_minutes"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
}

func FromResourceView(v *queries.ResourceView) *ResourceResponse {
	out := &ResourceResponse{}
	if err := copier.CopyWithOption(out, v, copyOption); err != nil {
		panic(err)
	}
	return out
}

func FromResourceViews(vs []*queries.ResourceView) []*ResourceResponse {
	out := make([]*ResourceResponse, len(vs))
	for i, v := range vs {
		out[i] = FromResourceView(v)
	}
	return out
}
