package domain

import "time"

// TargetRole selects the audience of an announcement.
type TargetRole string

const (
	TargetTenant     TargetRole = "tenant"
	TargetTechnician TargetRole = "technician"
	TargetAll        TargetRole = "all"
)

// Valid reports whether the target is one of the known audiences.
func (t TargetRole) Valid() bool {
	switch t {
	case TargetTenant, TargetTechnician, TargetAll:
		return true
	}
	return false
}

// Matches reports whether an announcement with this target is visible to
// the given role.
func (t TargetRole) Matches(role Role) bool {
	return t == TargetAll || string(t) == string(role)
}

// Announcement is a manager-authored broadcast. Immutable after creation.
type Announcement struct {
	ID         string
	Title      string
	Message    string
	TargetRole TargetRole
	AuthorID   string
	CreatedAt  time.Time
}
