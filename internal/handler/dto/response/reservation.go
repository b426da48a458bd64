package response

import (
	"time"

	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// Money leaves the API as a fixed two-decimal string.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(decimal.Decimal).StringFixed(2), nil
			},
		},
	},
}

type ReservationResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	UserID       uuid.UUID `json:"user_id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	StartMinute  int       `json:"start_minute"`
	EndMinute    int       `json:"end_minute"`
	Duration     int       `json:"duration"`
	Status       string    `json:"status"`
	TotalPrice   string    `json:"total_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	NextCursor   *string                `json:"next_cursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	out := &ReservationResponse{}
	if err := copier.CopyWithOption(out, v, copyOption); err != nil {
		// Field sets are fixed; a copy failure is a programming error.
		panic(err)
	}
	return out
}

func FromReservationViews(vs []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(vs))
	for i, v := range vs {
		out[i] = FromReservationView(v)
	}
	return out
}

func FromReservationPage(p *queries.ReservationPage) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: FromReservationViews(p.Items)}
	if p.Next != nil {
		next := p.Next.After
		resp.NextCursor = &next
	}
	return resp
}
