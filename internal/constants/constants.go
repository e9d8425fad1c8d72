package constants

// Session
const (
	SessionCookieName = "roadmap_session"
	ContextKeyUserID  = "user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Progress status values. The status field is an open string domain;
// these are the values the timeline UI offers.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusComplete   = "Complete"
)

// Named build-role keys used on checkpoints that carry role assignments.
const (
	RoleKeyLeadBuilder    = "leadBuilder"
	RoleKeySupportBuilder = "supportBuilder"
	RoleKeyLeadCutter     = "leadCutter"
	RoleKeySupportCutter  = "supportCutter"
)
