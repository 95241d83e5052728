package attendance

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
)

type AttendanceService interface {
	// SetOwn records the session user's status for a date
	SetOwn(ctx context.Context, s user.Session, req SetAttendanceRequest) (AttendanceResponse, error)

	// Allocate records a status on behalf of one of the session user's reports
	Allocate(ctx context.Context, s user.Session, req AllocateAttendanceRequest) (AttendanceResponse, error)

	// List returns normalized records matching the filter
	List(ctx context.Context, s user.Session, filter AttendanceFilter) ([]AttendanceResponse, error)
}
