package delegation

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type CreateDelegationRequest struct {
	DelegateID string `json:"delegateId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`

	start time.Time
	end   time.Time
}

func (r *CreateDelegationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DelegateID) {
		errs.Add("delegateId", "delegateId is required")
	} else if !validator.IsValidUUID(r.DelegateID) {
		errs.Add("delegateId", "invalid delegateId format")
	}

	start, err := calendar.Parse(r.StartDate)
	if err != nil {
		errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
	}
	end, err := calendar.Parse(r.EndDate)
	if err != nil {
		errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
	}

	if err := errs.Err(); err != nil {
		return err
	}
	if !end.After(start) {
		return ErrInvalidPeriod
	}

	r.start, r.end = start, end
	return nil
}

// Period returns the parsed window; valid after Validate.
func (r *CreateDelegationRequest) Period() (start, end time.Time) {
	return r.start, r.end
}

type DelegationResponse struct {
	ID            string  `json:"id"`
	DelegatorID   string  `json:"delegatorId"`
	DelegatorName *string `json:"delegatorName,omitempty"`
	DelegateID    string  `json:"delegateId"`
	DelegateName  *string `json:"delegateName,omitempty"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	IsActive      bool    `json:"isActive"`
	IsCurrent     bool    `json:"isCurrent"`
	RevokedAt     *string `json:"revokedAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func NewDelegationResponse(d Delegation, now time.Time) DelegationResponse {
	resp := DelegationResponse{
		ID:            d.ID,
		DelegatorID:   d.DelegatorID,
		DelegatorName: d.DelegatorName,
		DelegateID:    d.DelegateID,
		DelegateName:  d.DelegateName,
		StartDate:     calendar.Key(d.StartDate),
		EndDate:       calendar.Key(d.EndDate),
		IsActive:      d.IsActive,
		IsCurrent:     d.IsActiveAt(now),
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
	if d.RevokedAt != nil {
		revoked := d.RevokedAt.Format(time.RFC3339)
		resp.RevokedAt = &revoked
	}
	return resp
}

type ActiveDelegationResponse struct {
	HasActiveDelegation bool                `json:"hasActiveDelegation"`
	Delegation          *DelegationResponse `json:"delegation,omitempty"`
}
