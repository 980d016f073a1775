package natto

import "fmt"

// ConstructionError means a session could not even be created: the native
// library was unresolvable, a constructor returned a null handle, or the
// options were rejected. The session must not be used afterwards.
type ConstructionError struct {
	Reason string
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("natto: could not initialize MeCab: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("natto: could not initialize MeCab: %s", e.Reason)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// ParseError means the native parse or extraction call signaled failure.
// Native carries the engine's own error string when one was available.
// The binding never retries; callers may, with different input.
type ParseError struct {
	Native string
}

func (e *ParseError) Error() string {
	if e.Native == "" {
		return "natto: parse failed"
	}
	return fmt.Sprintf("natto: parse failed: %s", e.Native)
}

// ConstraintError means caller-supplied input was malformed: an invalid
// constraint pattern, offsets that do not cover the sentence, an empty
// sentence, or an operation out of session order. It is raised before any
// native state is touched.
type ConstraintError struct {
	Reason string
	Err    error
}

func (e *ConstraintError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("natto: %s: %v", e.Reason, e.Err)
	}
	return "natto: " + e.Reason
}

func (e *ConstraintError) Unwrap() error { return e.Err }
