// Package results carries operation outcomes between the store, service and
// transport layers. Expected conditions (absence, validation failures, bad
// credentials) travel as statuses instead of errors; only genuinely
// unexpected faults carry a cause.
package results

// Status enumerates every outcome a store or service call can produce.
type Status int

const (
	StatusOk Status = iota
	StatusNotFound
	StatusError
	StatusUnprocessable
	StatusBadRequest
	StatusUnauthorized
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusError:
		return "error"
	case StatusUnprocessable:
		return "unprocessable"
	case StatusBadRequest:
		return "bad_request"
	case StatusUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Store is the outcome of a store read keyed to an entity. Store calls only
// ever produce Ok, NotFound or Error.
type Store[E any] struct {
	status  Status
	entity  E
	message string
	cause   error
}

// StoreValue wraps a fetched entity.
func StoreValue[E any](entity E) Store[E] {
	return Store[E]{status: StatusOk, entity: entity}
}

// StoreMissing reports that no entity exists for the given key.
func StoreMissing[E any](key string) Store[E] {
	return Store[E]{status: StatusNotFound, message: key}
}

// StoreFault reports an unexpected store failure.
func StoreFault[E any](cause error, message string) Store[E] {
	return Store[E]{status: StatusError, cause: cause, message: message}
}

func (s Store[E]) Status() Status  { return s.status }
func (s Store[E]) IsOk() bool      { return s.status == StatusOk }
func (s Store[E]) IsNotFound() bool { return s.status == StatusNotFound }
func (s Store[E]) IsError() bool   { return s.status == StatusError }
func (s Store[E]) Entity() E       { return s.entity }
func (s Store[E]) Cause() error    { return s.cause }

// Message returns the stored message, falling back to the cause when no
// explicit message was recorded.
func (s Store[E]) Message() string {
	if s.message == "" && s.cause != nil {
		return s.cause.Error()
	}
	return s.message
}

// StoreAck is the outcome of a store mutation that returns no entity.
type StoreAck struct {
	status  Status
	message string
	cause   error
}

func StoreOk() StoreAck { return StoreAck{status: StatusOk} }

func StoreNotFound(key string) StoreAck {
	return StoreAck{status: StatusNotFound, message: key}
}

func StoreError(cause error, message string) StoreAck {
	return StoreAck{status: StatusError, cause: cause, message: message}
}

// StoreFailure reports a failure with no underlying cause, such as a save
// that affected zero rows.
func StoreFailure(message string) StoreAck {
	return StoreAck{status: StatusError, message: message}
}

func (a StoreAck) Status() Status   { return a.status }
func (a StoreAck) IsOk() bool       { return a.status == StatusOk }
func (a StoreAck) IsNotFound() bool { return a.status == StatusNotFound }
func (a StoreAck) IsError() bool    { return a.status == StatusError }
func (a StoreAck) Cause() error     { return a.cause }

func (a StoreAck) Message() string {
	if a.message == "" && a.cause != nil {
		return a.cause.Error()
	}
	return a.message
}

// Result is a service-level outcome carrying a payload on success.
type Result[T any] struct {
	status  Status
	value   T
	message string
	cause   error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{status: StatusOk, value: value}
}

func NotFound[T any]() Result[T] {
	return Result[T]{status: StatusNotFound}
}

func Error[T any](message string) Result[T] {
	return Result[T]{status: StatusError, message: message}
}

// ErrorFrom wraps an unexpected fault; Message falls back to the cause.
func ErrorFrom[T any](cause error) Result[T] {
	return Result[T]{status: StatusError, cause: cause}
}

func Unprocessable[T any](message string) Result[T] {
	return Result[T]{status: StatusUnprocessable, message: message}
}

func BadRequest[T any](message string) Result[T] {
	return Result[T]{status: StatusBadRequest, message: message}
}

func Unauthorized[T any](message string) Result[T] {
	return Result[T]{status: StatusUnauthorized, message: message}
}

func (r Result[T]) Status() Status        { return r.status }
func (r Result[T]) IsOk() bool            { return r.status == StatusOk }
func (r Result[T]) IsNotFound() bool      { return r.status == StatusNotFound }
func (r Result[T]) IsError() bool         { return r.status == StatusError }
func (r Result[T]) IsUnprocessable() bool { return r.status == StatusUnprocessable }
func (r Result[T]) IsBadRequest() bool    { return r.status == StatusBadRequest }
func (r Result[T]) IsUnauthorized() bool  { return r.status == StatusUnauthorized }
func (r Result[T]) Value() T              { return r.value }
func (r Result[T]) Cause() error          { return r.cause }

func (r Result[T]) Message() string {
	if r.message == "" && r.cause != nil {
		return r.cause.Error()
	}
	return r.message
}

// Ack is a service-level outcome with no payload.
type Ack struct {
	status  Status
	message string
	cause   error
}

func AckOk() Ack { return Ack{status: StatusOk} }

func AckNotFound() Ack { return Ack{status: StatusNotFound} }

func AckError(message string) Ack {
	return Ack{status: StatusError, message: message}
}

func AckErrorFrom(cause error) Ack {
	return Ack{status: StatusError, cause: cause}
}

func AckUnprocessable(message string) Ack {
	return Ack{status: StatusUnprocessable, message: message}
}

func AckBadRequest(message string) Ack {
	return Ack{status: StatusBadRequest, message: message}
}

func AckUnauthorized(message string) Ack {
	return Ack{status: StatusUnauthorized, message: message}
}

func (a Ack) Status() Status        { return a.status }
func (a Ack) IsOk() bool            { return a.status == StatusOk }
func (a Ack) IsNotFound() bool      { return a.status == StatusNotFound }
func (a Ack) IsError() bool         { return a.status == StatusError }
func (a Ack) IsUnprocessable() bool { return a.status == StatusUnprocessable }
func (a Ack) IsBadRequest() bool    { return a.status == StatusBadRequest }
func (a Ack) IsUnauthorized() bool  { return a.status == StatusUnauthorized }
func (a Ack) Cause() error          { return a.cause }

func (a Ack) Message() string {
	if a.message == "" && a.cause != nil {
		return a.cause.Error()
	}
	return a.message
}

// FromStore converts a store outcome to a service outcome, projecting the
// entity on success. A non-empty override replaces the error message drawn
// from the store; otherwise the underlying cause wins over the stored text.
func FromStore[T, E any](store Store[E], project func(E) T, override string) Result[T] {
	switch store.Status() {
	case StatusOk:
		return Ok(project(store.Entity()))
	case StatusNotFound:
		return NotFound[T]()
	default:
		if override != "" {
			return Error[T](override)
		}
		if store.Cause() != nil {
			return ErrorFrom[T](store.Cause())
		}
		return Error[T](store.Message())
	}
}

// Map reshapes the payload of a successful result and carries every other
// status through unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.IsOk() {
		return Ok(f(r.Value()))
	}
	return Result[U]{status: r.status, message: r.message, cause: r.cause}
}

// FromStoreAck is FromStore for the payload-free shapes. The two conversions
// must stay behaviourally identical.
func FromStoreAck(store StoreAck, override string) Ack {
	switch store.Status() {
	case StatusOk:
		return AckOk()
	case StatusNotFound:
		return AckNotFound()
	default:
		if override != "" {
			return AckError(override)
		}
		if store.Cause() != nil {
			return AckErrorFrom(store.Cause())
		}
		return AckError(store.Message())
	}
}
