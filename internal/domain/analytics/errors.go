package analytics

import (
	"fmt"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
)

var (
	ErrAnalyticsAccessDenied = fmt.Errorf("%w: only chapter leads and the tribe lead can view analytics", apperror.ErrPermission)
	ErrScopeOutsideTeam      = fmt.Errorf("%w: you can only view analytics for your own team", apperror.ErrPermission)
	ErrPersonalStatsDenied   = fmt.Errorf("%w: you can only view statistics for yourself or your reports", apperror.ErrPermission)
	ErrScopeUserNotFound     = fmt.Errorf("%w: user not found", apperror.ErrNotFound)
	ErrScopeLeadNotFound     = fmt.Errorf("%w: chapter lead not found", apperror.ErrNotFound)
	ErrNotChapterLead        = fmt.Errorf("%w: chapterLeadId does not reference a chapter lead", apperror.ErrValidation)
	ErrInvalidRange          = fmt.Errorf("%w: startDate must not be after endDate", apperror.ErrValidation)
	ErrRangeTooLong          = fmt.Errorf("%w: date range must not exceed %d days", apperror.ErrValidation, MaxRangeDays)
)
