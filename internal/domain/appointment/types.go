package appointment

// Status tracks where an appointment sits in the sync lifecycle. Online
// bookings are born confirmed; offline ones start as pending_sync on the
// client and become confirmed when the replay commits server-side.
type Status string

const (
	StatusConfirmed   Status = "confirmed"
	StatusPendingSync Status = "pending_sync"
	StatusSyncError   Status = "sync_error"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusPendingSync, StatusSyncError:
		return true
	default:
		return false
	}
}

// ConfirmationStatus is the receiver's post-delivery verdict. It moves
// away from pending at most once and never back.
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationProblem   ConfirmationStatus = "problem"
)

func (s ConfirmationStatus) String() string {
	return string(s)
}

func (s ConfirmationStatus) IsValid() bool {
	switch s {
	case ConfirmationPending, ConfirmationConfirmed, ConfirmationProblem:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the confirmation can no longer change.
func (s ConfirmationStatus) IsTerminal() bool {
	return s == ConfirmationConfirmed || s == ConfirmationProblem
}
