package attendance

import (
	"strings"
	"time"
)

type Status string

const (
	StatusOffice Status = "office"
	StatusRemote Status = "remote"
	StatusAbsent Status = "absent"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusOffice, StatusRemote, StatusAbsent}

// ParseStatus accepts a status case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOffice:
		return StatusOffice, nil
	case StatusRemote:
		return StatusRemote, nil
	case StatusAbsent:
		return StatusAbsent, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Record is one user's work location on one calendar day. There is at most
// one record per (UserID, Date).
type Record struct {
	ID        string
	UserID    string
	Date      time.Time
	Status    Status
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName *string
}
