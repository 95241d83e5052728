package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type SetAttendanceRequest struct {
	Date   string  `json:"date"`
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	date   time.Time
	status Status
}

func (r *SetAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	r.date, r.status = validateDateStatus(&errs, r.Date, r.Status)
	r.Notes = trimNotes(r.Notes)
	return errs.Err()
}

// Record builds the record to upsert for userID; valid after Validate.
func (r *SetAttendanceRequest) Record(userID string) Record {
	return Record{UserID: userID, Date: r.date, Status: r.status, Notes: r.Notes}
}

type AllocateAttendanceRequest struct {
	UserID string  `json:"userId"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	date   time.Time
	status Status
}

func (r *AllocateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("userId", "userId is required")
	} else if !validator.IsValidUUID(r.UserID) {
		errs.Add("userId", "invalid userId format")
	}
	r.date, r.status = validateDateStatus(&errs, r.Date, r.Status)
	r.Notes = trimNotes(r.Notes)

	return errs.Err()
}

// Record builds the record to upsert for the target; valid after Validate.
func (r *AllocateAttendanceRequest) Record() Record {
	return Record{UserID: r.UserID, Date: r.date, Status: r.status, Notes: r.Notes}
}

func validateDateStatus(errs *validator.ValidationErrors, dateStr, statusStr string) (time.Time, Status) {
	var date time.Time
	if validator.IsEmpty(dateStr) {
		errs.Add("date", "date is required")
	} else if d, err := calendar.Parse(dateStr); err != nil {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	} else {
		date = d
	}

	status, err := ParseStatus(statusStr)
	if err != nil {
		errs.Add("status", "status must be one of office, remote, absent")
	}
	return date, status
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// AttendanceFilter is the query of GET /attendance.
type AttendanceFilter struct {
	UserID    *string `json:"userId,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.UserID != nil && !validator.IsValidUUID(*f.UserID) {
		errs.Add("userId", "invalid userId format")
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
		}
	}
	if f.Status != nil {
		if _, err := ParseStatus(*f.Status); err != nil {
			errs.Add("status", "status must be one of office, remote, absent")
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}

	if f.StartDate != nil && f.EndDate != nil && *f.StartDate > *f.EndDate {
		return ErrInvalidDateRange
	}
	return nil
}

// RecordFilter converts a validated filter into a repository filter.
func (f AttendanceFilter) RecordFilter() RecordFilter {
	var rf RecordFilter
	rf.UserID = f.UserID
	if f.StartDate != nil {
		d, _ := calendar.Parse(*f.StartDate)
		rf.StartDate = &d
	}
	if f.EndDate != nil {
		d, _ := calendar.Parse(*f.EndDate)
		rf.EndDate = &d
	}
	if f.Status != nil {
		s, _ := ParseStatus(*f.Status)
		rf.Status = &s
	}
	return rf
}

type AttendanceResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	UserName  *string `json:"userName,omitempty"`
	Date      string  `json:"date"`
	Status    Status  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// NewAttendanceResponse re-keys the date to its canonical form.
func NewAttendanceResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Date:      calendar.Key(r.Date),
		Status:    r.Status,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

func NewAttendanceResponses(records []Record) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewAttendanceResponse(r))
	}
	return out
}

// ChangeEvent is published on the SSE hub after a confirmed write.
type ChangeEvent struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Status    Status `json:"status"`
	ChangedBy string `json:"changedBy"`
}
