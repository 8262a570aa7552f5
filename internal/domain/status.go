package domain

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusContacted RequestStatus = "contacted"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCompleted RequestStatus = "completed"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// statusTransitions is the full legal edge set. Transitions are monotone:
// there are no backward edges and no self-edges, and rejected/completed
// accept nothing.
var statusTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:   {StatusContacted, StatusApproved, StatusRejected},
	StatusContacted: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusCompleted},
	StatusRejected:  {},
	StatusCompleted: {},
}

func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status accepts no further transitions.
func (s RequestStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0 && s.Valid()
}

// Label returns the admin-facing display label. The switch is exhaustive so
// a new status fails loudly here instead of rendering blank in a dashboard.
func (s RequestStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusContacted:
		return "Contacted"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

// BadgeVariant maps a status to the dashboard badge style.
func (s RequestStatus) BadgeVariant() string {
	switch s {
	case StatusPending:
		return "secondary"
	case StatusContacted:
		return "info"
	case StatusApproved:
		return "success"
	case StatusRejected:
		return "destructive"
	case StatusCompleted:
		return "default"
	}
	return "outline"
}

type BulkAction string

const (
	ActionApprove BulkAction = "approve"
	ActionReject  BulkAction = "reject"
)

func (a BulkAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// TargetStatus returns the status a bulk action drives each request to.
func (a BulkAction) TargetStatus() RequestStatus {
	if a == ActionReject {
		return StatusRejected
	}
	return StatusApproved
}
