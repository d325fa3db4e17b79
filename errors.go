package rubidium

type Error struct {
	Type    ErrorType
	Message string
	Base    error
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Base != nil {
		return e.Base.Error()
	}
	return "rubidium - no Error message"
}

func (e Error) Unwrap() error {
	return e.Base
}

//go:generate stringer --type=ErrorType --output=errors_string.go
type ErrorType byte

const (
	ErrUnknown ErrorType = iota
	// ErrNaming - a run or registered function carries a missing or invalid identifier.
	ErrNaming
	// ErrContract - a constructor or mutator received wrong-shaped arguments.
	ErrContract
	// ErrInternal - a runner strategy terminated without fully populating its Run.
	// Signals a defect in the strategy, not caller misuse.
	ErrInternal
)

func newDerivedError(t ErrorType, base error) error {
	return Error{Type: t, Message: base.Error(), Base: base}
}

func newSimpleError(t ErrorType, msg string) error {
	return Error{Type: t, Message: msg}
}
