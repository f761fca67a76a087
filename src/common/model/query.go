package common_model

import "github.com/google/uuid"

// RequiredID is the query shape for endpoints addressed by a single UUID.
type RequiredID struct {
	ID uuid.UUID `query:"id" json:"id" validate:"required"`
}

// Paginate carries limit/offset query parameters for list endpoints.
type Paginate struct {
	Limit  int `query:"limit" json:"limit" validate:"omitempty,gte=1,lte=200"`
	Offset int `query:"offset" json:"offset" validate:"omitempty,gte=0"`
}

// Bounds returns the effective limit and offset, defaulting the limit to 50.
func (p *Paginate) Bounds() (int, int) {
	limit := p.Limit
	if limit == 0 {
		limit = 50
	}
	return limit, p.Offset
}
