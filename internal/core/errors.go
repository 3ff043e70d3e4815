package core

// Error codes for protocol violations and routing failures. Every one of
// these is scoped to a single message: the sender gets one error reply and
// nothing else changes.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeNotInRoom       = "not_in_room"
	ErrCodePeerUnavailable = "peer_unavailable"
	ErrCodeUnknownType     = "unknown_type"
)

// RelayError wraps a code and human-readable message.
type RelayError struct {
	Code    string
	Message string
}

func (e *RelayError) Error() string {
	return e.Message
}

func relayError(code, msg string) *RelayError {
	return &RelayError{Code: code, Message: msg}
}
