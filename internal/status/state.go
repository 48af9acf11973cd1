// Package status holds the request lifecycle shown by the front ends.
// The transition functions are pure: they take a State and return a new one.
package status

import (
	"strings"

	"github.com/oukeidos/tecta/internal/translation"
)

type Status string

const (
	Idle    Status = "idle"
	Loading Status = "loading"
	Success Status = "success"
	Error   Status = "error"
)

// DefaultErrorMessage replaces a blank rejection message.
const DefaultErrorMessage = "An unexpected error occurred."

// State always satisfies Data != nil iff Status == Success, and
// Err != "" iff Status == Error.
type State struct {
	Status Status
	Data   *translation.Response
	Err    string
}

// Valid reports whether s satisfies the State invariants.
func (s State) Valid() bool {
	switch s.Status {
	case Idle, Loading:
		return s.Data == nil && s.Err == ""
	case Success:
		return s.Data != nil && s.Err == ""
	case Error:
		return s.Data == nil && s.Err != ""
	}
	return false
}

// Clear returns the idle state. The result does not depend on what came before.
func Clear() State {
	return State{Status: Idle}
}

// Submit moves s to loading. It returns s unchanged and false when input is
// blank or a request is already in flight.
func Submit(s State, input string) (State, bool) {
	if strings.TrimSpace(input) == "" || s.Status == Loading {
		return s, false
	}
	return State{Status: Loading}, true
}

// Resolve stores resp if s is loading. A nil response counts as an empty reply.
func Resolve(s State, resp *translation.Response) State {
	if s.Status != Loading {
		return s
	}
	if resp == nil {
		return Reject(s, "")
	}
	return State{Status: Success, Data: resp}
}

// Reject stores msg if s is loading.
func Reject(s State, msg string) State {
	if s.Status != Loading {
		return s
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = DefaultErrorMessage
	}
	return State{Status: Error, Err: msg}
}
