package errors

import "fmt"

var (
	ErrAlreadyQueued    = fmt.Errorf("participant already queued")
	ErrAlreadyInSession = fmt.Errorf("participant already in an active session")
	ErrNotInSession     = fmt.Errorf("participant has no active room or conversation")
	ErrRateExceeded     = fmt.Errorf("message rate limit exceeded")
	ErrEmptyMessage     = fmt.Errorf("message is empty")
	ErrNoConversation   = fmt.Errorf("no active conversation")
	ErrInvalidMode      = fmt.Errorf("unknown matching mode")
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrEmptyCatalog     = fmt.Errorf("no personalities loaded")
)
