package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"greek-vocab-trainer/internal/domain/quiz"
	"greek-vocab-trainer/internal/domain/vocabulary"
)

// EntrySource provides a snapshot of the vocabulary
type EntrySource interface {
	Entries() []vocabulary.Entry
}

// QuizRunner runs a quiz session over a prepared pool
type QuizRunner interface {
	Run(ctx context.Context, pool []vocabulary.Entry) (quiz.Session, error)
}

// QuizUseCase prepares quiz pools and hands them to the engine
type QuizUseCase struct {
	source  EntrySource
	engine  QuizRunner
	shuffle quiz.ShuffleFunc
	log     *zap.Logger
}

// NewQuizUseCase creates a new quiz use case
func NewQuizUseCase(source EntrySource, engine QuizRunner, shuffle quiz.ShuffleFunc, log *zap.Logger) *QuizUseCase {
	return &QuizUseCase{
		source:  source,
		engine:  engine,
		shuffle: shuffle,
		log:     log,
	}
}

// Start quizzes the words of category in random order, or every word when
// category is empty. It returns quiz.ErrNothingToQuiz without asking
// anything when no word qualifies.
func (uc *QuizUseCase) Start(ctx context.Context, category vocabulary.Category) (quiz.Session, error) {
	pool := FilterByCategory(uc.source.Entries(), category)
	if len(pool) == 0 {
		uc.log.Info("nothing to quiz", zap.String("category", string(category)))
		return quiz.Session{}, fmt.Errorf("%w: category %q", quiz.ErrNothingToQuiz, category)
	}

	uc.shuffle(pool)

	session, err := uc.engine.Run(ctx, pool)
	if err != nil {
		return quiz.Session{}, fmt.Errorf("failed to run quiz: %w", err)
	}

	return session, nil
}
