package quiz

import (
	"fmt"

	"github.com/google/uuid"

	"greek-vocab-trainer/internal/domain/vocabulary"
)

// Outcome represents how a whole quiz session ended
type Outcome int

const (
	// OutcomeSuccess means the last round was answered without a miss
	OutcomeSuccess Outcome = iota + 1
	// OutcomeDone means the user declined to review the missed words
	OutcomeDone
	// OutcomeAborted means the user cancelled a question
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeDone:
		return "done"
	case OutcomeAborted:
		return "aborted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// RoundOutcome represents how a single round ended
type RoundOutcome int

const (
	RoundPerfect RoundOutcome = iota + 1
	RoundMissed
	RoundAborted
)

func (o RoundOutcome) String() string {
	switch o {
	case RoundPerfect:
		return "perfect"
	case RoundMissed:
		return "missed"
	case RoundAborted:
		return "aborted"
	default:
		return fmt.Sprintf("round_outcome(%d)", int(o))
	}
}

// Progress is reported before every question. The counters belong to the
// current round only.
type Progress struct {
	Index     int
	Total     int
	Correct   int
	Incorrect int
}

// RoundResult holds the classification of one pass over a pool
type RoundResult struct {
	Depth     int
	Pool      []vocabulary.Entry
	Correct   []vocabulary.Entry
	Incorrect []vocabulary.Entry
	// Score is the rounded percentage of correct answers, set once the
	// round has been answered completely.
	Score   int
	Outcome RoundOutcome
}

// Session represents a finished quiz session
type Session struct {
	ID      uuid.UUID
	Rounds  []RoundResult
	Outcome Outcome
}

// LastRound returns the final round of the session
func (s Session) LastRound() RoundResult {
	if len(s.Rounds) == 0 {
		return RoundResult{}
	}
	return s.Rounds[len(s.Rounds)-1]
}
