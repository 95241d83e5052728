package user

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
)

var (
	ErrUserNotFound            = fmt.Errorf("%w: user not found", apperror.ErrNotFound)
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidRole             = fmt.Errorf("%w: invalid role", apperror.ErrValidation)
	ErrInvalidUserID           = fmt.Errorf("%w: invalid user id", apperror.ErrValidation)
	ErrReporterNeedsLead       = fmt.Errorf("%w: a reporter must reference an existing chapter lead", apperror.ErrValidation)
	ErrLeadCannotHaveLead      = fmt.Errorf("%w: only reporters may have a chapter lead", apperror.ErrValidation)
	ErrTribeLeadExists         = fmt.Errorf("%w: a tribe lead already exists", apperror.ErrValidation)
	ErrTribeLeadRequired       = fmt.Errorf("%w: the tribe lead cannot be removed or demoted", apperror.ErrValidation)
	ErrChapterLeadHasReports   = fmt.Errorf("%w: chapter lead still has reporters assigned", apperror.ErrValidation)
	ErrCannotDeleteSelf        = fmt.Errorf("%w: you cannot delete your own account", apperror.ErrValidation)
	ErrTribeLeadAccessRequired = fmt.Errorf("%w: tribe lead access required", apperror.ErrPermission)
	ErrAdminAccessRequired     = fmt.Errorf("%w: admin access required", apperror.ErrPermission)
	ErrLeadAccessRequired      = fmt.Errorf("%w: chapter lead or tribe lead access required", apperror.ErrPermission)
	ErrCannotEditUser          = fmt.Errorf("%w: you may only edit your own profile", apperror.ErrPermission)
	ErrInsufficientPermissions = fmt.Errorf("%w: insufficient permissions", apperror.ErrPermission)
	ErrNotInYourTeam           = fmt.Errorf("%w: user is not in your team", apperror.ErrPermission)
)
