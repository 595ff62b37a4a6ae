package jobs

import (
	"fmt"
	"log"
)

// TaggedLogger is the optional structured-logger collaborator from
// spec.md §6: a logger whose Tagged operation scopes nested log calls
// under a tag. When absent, InvokeJob is a pass-through.
type TaggedLogger interface {
	Tagged(tag string, fn func())
}

// stdTaggedLogger is the grounded default: the teacher never imports a
// structured logging library anywhere (std log.Printf is the idiom), so
// tagging is implemented as a prefix around the same std logger rather
// than reaching for zerolog/zap/logrus.
type stdTaggedLogger struct{}

// NewStdLogger returns the std-log-backed TaggedLogger used when no
// collaborator logger is configured.
func NewStdLogger() TaggedLogger { return stdTaggedLogger{} }

func (stdTaggedLogger) Tagged(tag string, fn func()) {
	log.Printf("[%s] entering", tag)
	fn()
	log.Printf("[%s] exiting", tag)
}

// InvokeJob wraps run with tagged "Entering job"/"Exiting job" logging when
// logger is non-nil, else it calls run directly. run performs the actual
// execution, which is the caller's concern per spec.md §1's scope.
func (j *Job) InvokeJob(logger TaggedLogger, run func() error) error {
	if logger == nil {
		return run()
	}

	var runErr error
	tag := fmt.Sprintf("Job id=%d handler=%s", j.ID, handlerTypeHint(j.Handler))
	logger.Tagged(tag, func() {
		log.Printf("[%s] Entering job", tag)
		runErr = run()
		log.Printf("[%s] Exiting job", tag)
	})
	return runErr
}

// handlerTypeHint best-effort extracts a short label from the handler blob
// for the log tag, without requiring the caller's payload type here.
func handlerTypeHint(handler string) string {
	const max = 40
	if len(handler) <= max {
		return handler
	}
	return handler[:max] + "..."
}
