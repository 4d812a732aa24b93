package brackets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
)

// Sentinel errors of the bracket engine. Handlers match on these with
// errors.Is; the typed errors below wrap them and carry the diagnostic data.
var (
	ErrInvalidBracketSize   = errors.New("number of subscribed teams must be a power of two")
	ErrNoCompletedMatches   = errors.New("championship has no completed matches")
	ErrPendingMatches       = errors.New("matches are still pending a result")
	ErrInsufficientWinners  = errors.New("not enough winners to form a next phase")
	ErrUnrecognizedStage    = errors.New("could not recognize the current stage")
	ErrChampionshipFinished = errors.New("championship already has a final result")
	ErrAlreadyFinalized     = errors.New("grand final already scheduled")
	ErrOddWinnerCount       = errors.New("odd number of winners cannot be paired")

	ErrUpperWaitingOnLower  = errors.New("upper bracket resolved, waiting on lower bracket")
	ErrLowerWaitingOnUpper  = errors.New("lower bracket resolved, waiting on upper bracket")
	ErrBracketFullyResolved = errors.New("no bracket can progress any further")
)

// InvalidBracketSizeError reports the offending team count.
type InvalidBracketSizeError struct {
	Count int
}

func (e *InvalidBracketSizeError) Error() string {
	return fmt.Sprintf("%v: got %d", ErrInvalidBracketSize, e.Count)
}

func (e *InvalidBracketSizeError) Unwrap() error { return ErrInvalidBracketSize }

// PendingMatchesError lists the matches blocking advancement.
type PendingMatchesError struct {
	Matches []*models.Match
}

func (e *PendingMatchesError) Error() string {
	return fmt.Sprintf("%v: %d match(es) without a winner", ErrPendingMatches, len(e.Matches))
}

func (e *PendingMatchesError) Unwrap() error { return ErrPendingMatches }

// UnrecognizedStageError reports the distinct stage labels found for the
// championship, for diagnostics.
type UnrecognizedStageError struct {
	Stages []string
}

func (e *UnrecognizedStageError) Error() string {
	return fmt.Sprintf("%v: found stages [%s]", ErrUnrecognizedStage, strings.Join(e.Stages, ", "))
}

func (e *UnrecognizedStageError) Unwrap() error { return ErrUnrecognizedStage }
