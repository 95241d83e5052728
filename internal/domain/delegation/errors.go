package delegation

import (
	"fmt"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
)

var (
	ErrDelegationNotFound = fmt.Errorf("%w: delegation not found", apperror.ErrNotFound)
	ErrDelegateNotFound   = fmt.Errorf("%w: delegate not found", apperror.ErrNotFound)
	ErrInvalidID          = fmt.Errorf("%w: invalid delegation id", apperror.ErrValidation)
	ErrDelegateNotLead    = fmt.Errorf("%w: delegate must be a chapter lead", apperror.ErrValidation)
	ErrSelfDelegation     = fmt.Errorf("%w: cannot delegate to yourself", apperror.ErrValidation)
	ErrInvalidPeriod      = fmt.Errorf("%w: end date must be after start date", apperror.ErrValidation)
	ErrTribeLeadOnly      = fmt.Errorf("%w: only the tribe lead can manage delegations", apperror.ErrPermission)
)
