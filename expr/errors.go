package expr

import (
	"errors"
	"fmt"

	"remap/types"
)

// ErrorCode classifies compile-time diagnostics
type ErrorCode int

const (
	MissingArgument ErrorCode = iota + 1
	TypeMismatch
	UnknownFunction
	UnknownKeyword
	TooManyArguments
	DuplicateArgument
	InvalidArgument
	UndefinedVariable
)

var codeNames = map[ErrorCode]string{
	MissingArgument:   "missing_argument",
	TypeMismatch:      "type_mismatch",
	UnknownFunction:   "unknown_function",
	UnknownKeyword:    "unknown_keyword",
	TooManyArguments:  "too_many_arguments",
	DuplicateArgument: "duplicate_argument",
	InvalidArgument:   "invalid_argument",
	UndefinedVariable: "undefined_variable",
}

// String returns the snake_case name used in diagnostics and fixtures
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("error_code(%d)", int(c))
}

// ErrorCodeFromString parses a name produced by String
func ErrorCodeFromString(s string) (ErrorCode, bool) {
	for code, name := range codeNames {
		if name == s {
			return code, true
		}
	}
	return 0, false
}

// Sentinels for errors.Is
var (
	ErrMissingArgument   = errors.New("missing argument")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrUnknownFunction   = errors.New("unknown function")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUndefinedVariable = errors.New("undefined variable")
)

var codeSentinels = map[ErrorCode]error{
	MissingArgument:   ErrMissingArgument,
	TypeMismatch:      ErrTypeMismatch,
	UnknownFunction:   ErrUnknownFunction,
	InvalidArgument:   ErrInvalidArgument,
	UndefinedVariable: ErrUndefinedVariable,
}

// CompileError is a diagnostic that aborts compilation of the whole program
type CompileError struct {
	Code     ErrorCode
	Function string
	Keyword  string
	Want     types.Kind
	Got      types.Kind
	Message  string
	Pos      int // byte offset of the call site, -1 when unknown
}

func (e *CompileError) Error() string {
	var msg string
	switch e.Code {
	case MissingArgument:
		msg = fmt.Sprintf("missing required argument %q", e.Keyword)
	case TypeMismatch:
		msg = fmt.Sprintf("argument %q expected %s, got %s", e.Keyword, e.Want, e.Got)
	default:
		msg = e.Message
	}
	if e.Function != "" {
		msg = fmt.Sprintf("function %q: %s", e.Function, msg)
	}
	if e.Pos >= 0 {
		msg = fmt.Sprintf("%s (at offset %d)", msg, e.Pos)
	}
	return msg
}

// Is matches the sentinel for the error's code
func (e *CompileError) Is(target error) bool {
	sentinel, ok := codeSentinels[e.Code]
	return ok && sentinel == target
}

// NewMissingArgument reports an absent required parameter
func NewMissingArgument(function, keyword string) *CompileError {
	return &CompileError{Code: MissingArgument, Function: function, Keyword: keyword, Pos: -1}
}

// NewTypeMismatch reports an argument whose static kind can never satisfy
// the parameter
func NewTypeMismatch(function, keyword string, want, got types.Kind) *CompileError {
	return &CompileError{Code: TypeMismatch, Function: function, Keyword: keyword, Want: want, Got: got, Pos: -1}
}

// Errorf builds a CompileError with a formatted message
func Errorf(code ErrorCode, function, format string, args ...any) *CompileError {
	return &CompileError{Code: code, Function: function, Message: fmt.Sprintf(format, args...), Pos: -1}
}

// FunctionError annotates a runtime failure with the function that raised it
type FunctionError struct {
	Function string
	Err      error
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function call error for %q: %v", e.Function, e.Err)
}

func (e *FunctionError) Unwrap() error {
	return e.Err
}

// ErrorType returns a short classification of a runtime error, used as a
// metric tag
func ErrorType(err error) string {
	var coercion *types.CoercionError
	var fnErr *FunctionError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &coercion):
		return "type_coercion"
	case errors.As(err, &fnErr):
		return "function_call"
	default:
		return "evaluation"
	}
}
