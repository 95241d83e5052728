package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
)

// Attendance domain errors
var (
	ErrInvalidStatus      = fmt.Errorf("%w: status must be one of office, remote, absent", apperror.ErrValidation)
	ErrInvalidDateRange   = fmt.Errorf("%w: startDate must not be after endDate", apperror.ErrValidation)
	ErrTargetNotFound     = fmt.Errorf("%w: target user not found", apperror.ErrNotFound)
	ErrAllocateNotAllowed = fmt.Errorf("%w: only chapter leads and the tribe lead can allocate attendance", apperror.ErrPermission)
	ErrTargetNotReport    = fmt.Errorf("%w: you can only allocate attendance for your own reports", apperror.ErrPermission)
	ErrCannotAllocateSelf = fmt.Errorf("%w: use your own attendance to set your status", apperror.ErrPermission)
)
