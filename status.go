// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mon

// A Status is the result of parsing and dispatching one command. Errors are
// local, synchronous and non-retryable; the first error encountered on a
// line discards the remainder of the line.
type Status int

const (
	OK Status = iota
	ErrIllegalInput
	ErrRangeBadStart
	ErrRangeBadEnd
	ErrBadCommand
	ErrExpectCheckpointNumber
	ErrExpectEndOfCommand
	ErrMissingCloseParen
	ErrIncompleteCondOp
	ErrExpectFilename
	ErrAddressTooLarge
	ErrImmediateTooLarge
	ErrExpectString
	ErrUndefinedLabel
	ErrExpectDeviceNumber
	ErrExpectAddress
	ErrInvalidRegister

	// StatusNotImplemented marks a command form that is recognized but not
	// wired up yet. It is a distinct terminal state, not a parse error.
	StatusNotImplemented
)

var statusMessages = map[Status]string{
	OK:                        "ok",
	ErrIllegalInput:           "Wrong syntax",
	ErrRangeBadStart:          "Bad first address in range",
	ErrRangeBadEnd:            "Bad second address in range",
	ErrBadCommand:             "Bad command",
	ErrExpectCheckpointNumber: "Checkpoint number expected",
	ErrExpectEndOfCommand:     "Unexpected token",
	ErrMissingCloseParen:      "')' expected",
	ErrIncompleteCondOp:       "Conditional operation missing an operand",
	ErrExpectFilename:         "Expecting a filename",
	ErrAddressTooLarge:        "Address too large",
	ErrImmediateTooLarge:      "Immediate argument too large",
	ErrExpectString:           "Expecting a string",
	ErrUndefinedLabel:         "Found an undefined label",
	ErrExpectDeviceNumber:     "Expecting a device number",
	ErrExpectAddress:          "Expecting an address",
	ErrInvalidRegister:        "Invalid register",
	StatusNotImplemented:      "Not implemented yet",
}

// Message returns the text the driver prints for the status.
func (s Status) Message() string {
	if m, ok := statusMessages[s]; ok {
		return m
	}
	return "Wrong syntax"
}

func (s Status) String() string {
	return s.Message()
}
