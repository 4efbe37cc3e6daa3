// Package errors provides sentinel errors and error types for the chess
// position engine and its host. It defines common error conditions and
// structured error types that preserve context while allowing error
// inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrMalformedFEN indicates a FEN record that could not be parsed.
	ErrMalformedFEN = errors.New("malformed FEN")

	// ErrInvalidSquare indicates file-rank text that names no square.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrIllegalMove indicates a move whose origin is empty or belongs to
	// the side not on move, or that is otherwise inapplicable.
	ErrIllegalMove = errors.New("illegal move")

	// ErrPromotionPending indicates a move attempted while a pawn on the
	// last rank is still waiting for its promotion piece.
	ErrPromotionPending = errors.New("promotion pending")

	// ErrNoPendingPromotion indicates a promotion completion with nothing to complete.
	ErrNoPendingPromotion = errors.New("no pending promotion")

	// ErrRulesUnavailable indicates the legal-move service failed or timed out.
	ErrRulesUnavailable = errors.New("rules service unavailable")

	// ErrGameNotFound indicates an unknown game session ID.
	ErrGameNotFound = errors.New("game not found")

	// ErrNothingToUndo indicates an undo at the start of a game.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates a redo with no undone moves.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrPositionChanged indicates a move checked against a position that
	// another caller changed before the move could be applied.
	ErrPositionChanged = errors.New("position changed")
)

// FENError reports which field of a FEN record was rejected.
// It unwraps to ErrMalformedFEN.
type FENError struct {
	Field string // "board", "side", "castling", "en passant", "halfmove", "fullmove" or "record"
	Value string // The offending text
	Msg   string // What was wrong with it (optional)
}

// Error returns a formatted error message including the field and text.
func (e *FENError) Error() string {
	var parts []string
	parts = append(parts, ErrMalformedFEN.Error())
	if e.Field != "" {
		parts = append(parts, e.Field+" field")
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Value != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Value))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns ErrMalformedFEN so callers can use errors.Is.
func (e *FENError) Unwrap() error {
	return ErrMalformedFEN
}

// MoveError wraps a move-application failure with the squares involved.
type MoveError struct {
	Err    error  // ErrIllegalMove, ErrPromotionPending or ErrNoPendingPromotion
	From   string // Origin in file-rank form (if applicable)
	To     string // Destination in file-rank form (if applicable)
	Reason string // Short explanation
}

// Error returns a formatted error message with the move and reason.
func (e *MoveError) Error() string {
	var parts []string
	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %s%s", e.From, e.To))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return "move error"
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
