package capacity

import (
	"fmt"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
)

var (
	ErrInvalidDayOfWeek     = fmt.Errorf("%w: day must be one of monday..sunday", apperror.ErrValidation)
	ErrCapacityManageDenied = fmt.Errorf("%w: you do not have permission to manage office capacity", apperror.ErrPermission)
)
