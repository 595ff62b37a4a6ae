package jobs

import "encoding/json"

// Payload is the opaque unit of work a caller enqueues. Its wire format is
// the caller's concern; jobs only needs to (de)serialize it to the
// handler text column and optionally read a singleton-queue name from it.
type Payload interface{}

// SingletonQueueNamer is the optional capability a Payload may implement.
// When present, its return value overrides any caller-supplied Singleton
// option on enqueue (spec.md §4.3's derivation rule).
type SingletonQueueNamer interface {
	// SingletonQueueName returns the singleton class name and true, or
	// ("", false) if this particular payload instance doesn't want one.
	SingletonQueueName() (string, bool)
}

// DeserializationError wraps a failure to decode a job's handler column
// back into a Payload. It is tolerated (logged and swallowed) only in the
// singleton-sibling cleanup path of Destroy; everywhere else it propagates.
type DeserializationError struct {
	cause error
}

func (e *DeserializationError) Error() string {
	return "deserialize job handler: " + e.cause.Error()
}

func (e *DeserializationError) Unwrap() error { return e.cause }

// EncodePayload serializes a Payload to the handler text blob (JSON, the
// simplest format available to every backend's TEXT column).
func EncodePayload(p Payload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodePayload deserializes a handler text blob back into dst. Failures
// are always reported as *DeserializationError so callers like Destroy can
// identify and tolerate them per I4's caveat.
func DecodePayload(handler string, dst Payload) error {
	if err := json.Unmarshal([]byte(handler), dst); err != nil {
		return &DeserializationError{cause: err}
	}
	return nil
}

// singletonNameOf reads the SingletonQueueNamer capability off a payload,
// if present, mirroring the source's "does payload respond to
// singleton_queue_name?" duck-typing check.
func singletonNameOf(p Payload) (string, bool) {
	namer, ok := p.(SingletonQueueNamer)
	if !ok {
		return "", false
	}
	return namer.SingletonQueueName()
}
