// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrGettingDifficulty indicates that there was an error getting the
	// required difficulty for the next block.
	ErrGettingDifficulty = ErrorKind("ErrGettingDifficulty")

	// ErrTransactionAppend indicates there was a problem adding a msgtx
	// to a msgblock.
	ErrTransactionAppend = ErrorKind("ErrTransactionAppend")

	// ErrReferralAppend indicates there was a problem adding a referral
	// to a msgblock.
	ErrReferralAppend = ErrorKind("ErrReferralAppend")

	// ErrTemplateBookkeeping indicates that the running totals or working
	// sets of an assembly run became inconsistent with the block body
	// being built.  It signals a defect in the assembler itself rather
	// than bad input, so a run that hits it must be aborted rather than
	// allowed to produce an inconsistent template.
	ErrTemplateBookkeeping = ErrorKind("ErrTemplateBookkeeping")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error during block template assembly.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
