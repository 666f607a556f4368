package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"greek-vocab-trainer/internal/domain/vocabulary"
)

// ErrNothingToQuiz is returned when a quiz is started with an empty pool.
var ErrNothingToQuiz = errors.New("nothing to quiz")

// Prompter is the blocking dialog surface the engine talks to.
// AskText reports ok=false when the user cancels instead of answering.
type Prompter interface {
	AskText(ctx context.Context, prompt, initial string) (answer string, ok bool)
	AskYesNo(ctx context.Context, prompt string) bool
	ShowInfo(ctx context.Context, title, body string)
}

// ShuffleFunc reorders entries in place
type ShuffleFunc func(entries []vocabulary.Entry)

// Shuffle returns a ShuffleFunc backed by r
func Shuffle(r *rand.Rand) ShuffleFunc {
	return func(entries []vocabulary.Entry) {
		r.Shuffle(len(entries), func(i, j int) {
			entries[i], entries[j] = entries[j], entries[i]
		})
	}
}

// Engine runs quiz sessions: every word of the pool is asked once, the
// misses can be replayed in a fresh round until a round has no misses.
type Engine struct {
	prompter   Prompter
	shuffle    ShuffleFunc
	onProgress func(Progress)
	log        *zap.Logger
}

// NewEngine creates a new quiz engine
func NewEngine(prompter Prompter, shuffle ShuffleFunc, log *zap.Logger) *Engine {
	return &Engine{
		prompter: prompter,
		shuffle:  shuffle,
		log:      log,
	}
}

// OnProgress registers a hook called before every question
func (e *Engine) OnProgress(fn func(Progress)) {
	e.onProgress = fn
}

// Run quizzes the user on pool, which is asked in the given order. Review
// rounds are unlimited; the session only ends on a perfect round, a
// cancelled question or a declined review.
func (e *Engine) Run(ctx context.Context, pool []vocabulary.Entry) (Session, error) {
	if len(pool) == 0 {
		return Session{}, ErrNothingToQuiz
	}

	session := Session{ID: uuid.New()}
	log := e.log.With(zap.String("session_id", session.ID.String()))
	log.Info("quiz started", zap.Int("pool", len(pool)))

	current := append([]vocabulary.Entry(nil), pool...)
	for depth := 1; ; depth++ {
		round := e.runRound(ctx, current, depth)
		session.Rounds = append(session.Rounds, round)

		log.Debug("round finished",
			zap.Int("depth", depth),
			zap.Stringer("outcome", round.Outcome),
			zap.Int("correct", len(round.Correct)),
			zap.Int("incorrect", len(round.Incorrect)),
		)

		switch round.Outcome {
		case RoundAborted:
			session.Outcome = OutcomeAborted
		case RoundPerfect:
			e.prompter.ShowInfo(ctx, "Congratulations!", "🎉 You got 100% — you're done!")
			session.Outcome = OutcomeSuccess
		case RoundMissed:
			question := fmt.Sprintf("You got %d / %d correct (%d%%).\n\nReview %d incorrect terms?",
				len(round.Correct), len(round.Pool), round.Score, len(round.Incorrect))
			if e.prompter.AskYesNo(ctx, question) {
				next := append([]vocabulary.Entry(nil), round.Incorrect...)
				e.shuffle(next)
				current = next
				continue
			}
			e.prompter.ShowInfo(ctx, "Done", "Quiz ended.")
			session.Outcome = OutcomeDone
		}

		log.Info("quiz finished", zap.Stringer("outcome", session.Outcome), zap.Int("rounds", len(session.Rounds)))
		return session, nil
	}
}

func (e *Engine) runRound(ctx context.Context, pool []vocabulary.Entry, depth int) RoundResult {
	round := RoundResult{
		Depth:     depth,
		Pool:      pool,
		Correct:   []vocabulary.Entry{},
		Incorrect: []vocabulary.Entry{},
	}

	for i, entry := range pool {
		if ctx.Err() != nil {
			round.Outcome = RoundAborted
			return round
		}

		progress := Progress{
			Index:     i + 1,
			Total:     len(pool),
			Correct:   len(round.Correct),
			Incorrect: len(round.Incorrect),
		}
		if e.onProgress != nil {
			e.onProgress(progress)
		}

		answer, ok := e.prompter.AskText(ctx, questionText(progress, entry), "")
		if !ok {
			round.Outcome = RoundAborted
			return round
		}

		title, verdict := "Correct", "✅ Correct!"
		if vocabulary.IsCorrect(entry, answer) {
			round.Correct = append(round.Correct, entry)
		} else {
			round.Incorrect = append(round.Incorrect, entry)
			title, verdict = "Incorrect", "❌ Incorrect."
		}

		e.prompter.ShowInfo(ctx, title, fmt.Sprintf("%s\n\n%s — %s\n\n✅ %d     ❌ %d",
			verdict, entry.Term, entry.Meaning, len(round.Correct), len(round.Incorrect)))
	}

	if len(round.Incorrect) == 0 {
		round.Score = 100
		round.Outcome = RoundPerfect
		return round
	}

	round.Score = Score(len(round.Correct), len(pool))
	round.Outcome = RoundMissed
	return round
}

// Score returns the percentage of correct answers rounded half to even
func Score(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(100 * float64(correct) / float64(total)))
}

func questionText(p Progress, entry vocabulary.Entry) string {
	return fmt.Sprintf("(%d / %d)\nWhat does '%s' mean?\n\n✅ %d     ❌ %d",
		p.Index, p.Total, entry.Term, p.Correct, p.Incorrect)
}
