// Package notify owns the notification permission state machine and the
// dispatch contract. Delivery is a collaborator; a missing or failing
// dispatcher degrades to silence, never to an error.
package notify

// Permission is the dispatch gate's state.
type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// Dispatcher delivers one notification. Implementations are fire and
// forget; the service swallows their errors.
type Dispatcher interface {
	Send(title, body string) error
}

// Service gates dispatch behind the permission state machine.
type Service struct {
	perm       Permission
	dispatcher Dispatcher
}

// NewService starts in the default (undecided) permission state.
func NewService(d Dispatcher) *Service {
	return &Service{dispatcher: d}
}

// Permission returns the current gate state.
func (s *Service) Permission() Permission { return s.perm }

// RequestPermission resolves the default state: granted when a dispatcher
// is available, denied otherwise. A previously denied state stays denied.
func (s *Service) RequestPermission() bool {
	switch s.perm {
	case PermissionGranted:
		return true
	case PermissionDenied:
		return false
	}
	if s.dispatcher == nil {
		s.perm = PermissionDenied
		return false
	}
	s.perm = PermissionGranted
	return true
}

// Revoke moves the gate to denied. Further sends no-op.
func (s *Service) Revoke() { s.perm = PermissionDenied }

// Send dispatches when and only when permission is granted. All failures
// are swallowed; an unavailable notifier is a degraded mode, not an error.
func (s *Service) Send(title, body string) {
	if s.perm != PermissionGranted || s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Send(title, body)
}
