package wasmerr

import "fmt"

// ValueType mirrors the four-member value-type universe so that
// MismatchedOperandTypes and friends can report expected/found sequences
// without this package importing the IR package.
type ValueType int

const (
	ValueTypeI32 ValueType = iota
	ValueTypeI64
	ValueTypeF32
	ValueTypeF64
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Error is the single error type the decoder and validator return; the
// lowering walk and the backend report plain wrapped errors instead. Offset is the cursor position recorded at the entry
// of the operation that failed — never the position after any partial
// consumption — so callers can point at exactly where decoding went wrong.
type Error struct {
	Kind   ErrorKind
	Offset int

	// Expected/Found are populated only for the Mismatched* kinds; both are
	// nil for every other kind.
	Expected []ValueType
	Found    []ValueType
}

func New(kind ErrorKind, offset int) *Error {
	return &Error{Kind: kind, Offset: offset}
}

// NewMismatchedOperandTypes builds a MismatchedOperandTypes error carrying
// the expected and actually-found operand type sequences.
func NewMismatchedOperandTypes(offset int, expected, found []ValueType) *Error {
	return &Error{Kind: MismatchedOperandTypes, Offset: offset, Expected: expected, Found: found}
}

func (e *Error) Error() string {
	if e.Expected != nil || e.Found != nil {
		return fmt.Sprintf("%s at offset %d: expected %v, found %v", e.Kind, e.Offset, e.Expected, e.Found)
	}
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}
