package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/japanesestudent/kanji-service/internal/models"
	"github.com/japanesestudent/kanji-service/internal/progress"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// WordsLoadError is reported on a kanji page whose words could not be loaded
	WordsLoadError = "Failed to load words"
	// LevelLoadError is reported on a level card whose kanji list could not be loaded
	LevelLoadError = "Failed to load kanji data"
)

// maxLevelFetches bounds concurrent provider calls of one overview request
const maxLevelFetches = 3

var (
	// ErrInvalidGrade is returned for a grade outside 1-6 and 8
	ErrInvalidGrade = errors.New("invalid grade")
	// ErrInvalidJLPTLevel is returned for a JLPT level outside 1-5
	ErrInvalidJLPTLevel = errors.New("invalid JLPT level")
	// ErrReadingRequired is returned for a blank reading
	ErrReadingRequired = errors.New("reading is required")
)

// KanjiProvider is the interface that wraps methods of the external kanji data API
type KanjiProvider interface {
	// Method KanjiByGrade retrieve the kanji taught in a school grade.
	//
	// Any provider failure is returned as an error, never as an empty list.
	KanjiByGrade(ctx context.Context, grade int) ([]string, error)
	// Method KanjiByJLPT retrieve the kanji of a JLPT level (1 is the hardest, 5 the easiest).
	KanjiByJLPT(ctx context.Context, level int) ([]string, error)
	// Method JoyoKanji retrieve the full Joyo kanji list.
	JoyoKanji(ctx context.Context) ([]string, error)
	// Method KanjiDetails retrieve the detail record of a kanji.
	//
	// An unknown kanji is reported as a provider not-found error.
	KanjiDetails(ctx context.Context, kanji string) (*models.KanjiDetails, error)
	// Method WordsByKanji retrieve the words that use a kanji.
	WordsByKanji(ctx context.Context, kanji string) ([]models.Word, error)
	// Method KanjiByReading retrieve the kanji that have a kun or on reading.
	KanjiByReading(ctx context.Context, reading string) ([]string, error)
}

type kanjiService struct {
	provider KanjiProvider
	learned  LearnedKanjiRepository
	logger   *zap.Logger
}

// NewKanjiService creates a new kanji catalogue service
func NewKanjiService(provider KanjiProvider, learned LearnedKanjiRepository, logger *zap.Logger) *kanjiService {
	return &kanjiService{
		provider: provider,
		learned:  learned,
		logger:   logger,
	}
}

// GradeOverview retrieves the grade cards
//
// For a signed-in user (non-empty userID) each card carries the completion of its grade.
// A grade whose list cannot be loaded gets LoadError instead and the other cards are unaffected.
func (s *kanjiService) GradeOverview(ctx context.Context, userID string) ([]models.LevelOverview, error) {
	return s.overview(ctx, userID, models.Grades, s.provider.KanjiByGrade)
}

// JLPTOverview retrieves the JLPT level cards from N5 to N1
//
// Please reference GradeOverview for the progress and error semantics.
func (s *kanjiService) JLPTOverview(ctx context.Context, userID string) ([]models.LevelOverview, error) {
	return s.overview(ctx, userID, models.JLPTLevels, s.provider.KanjiByJLPT)
}

func (s *kanjiService) overview(ctx context.Context, userID string, levels []models.LevelInfo, fetch func(context.Context, int) ([]string, error)) ([]models.LevelOverview, error) {
	result := make([]models.LevelOverview, len(levels))
	for i, level := range levels {
		result[i] = models.LevelOverview{LevelInfo: level}
	}
	if userID == "" {
		return result, nil
	}

	isLearned, err := s.learnedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.SetLimit(maxLevelFetches)
	for i := range result {
		g.Go(func() error {
			kanji, err := fetch(ctx, result[i].Level)
			if err != nil {
				s.logger.Warn("failed to load level kanji", zap.Int("level", result[i].Level), zap.Error(err))
				result[i].LoadError = LevelLoadError
				return nil
			}
			completion := progress.Compute(isLearned, kanji)
			result[i].Progress = &completion
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

// GradeKanji retrieves the kanji list of a school grade
//
// Valid grades are 1 to 6 and 8 (secondary school). Progress is set for signed-in users.
func (s *kanjiService) GradeKanji(ctx context.Context, grade int, userID string) (*models.LevelKanji, error) {
	if !isValidGrade(grade) {
		return nil, ErrInvalidGrade
	}

	kanji, err := s.provider.KanjiByGrade(ctx, grade)
	if err != nil {
		s.logger.Error("failed to load grade kanji", zap.Int("grade", grade), zap.Error(err))
		return nil, fmt.Errorf("failed to load grade %d kanji: %w", grade, err)
	}

	return s.levelKanji(ctx, models.ScopeGrade, grade, kanji, userID)
}

// JLPTKanji retrieves the kanji list of a JLPT level
//
// Valid levels are 1 to 5. Progress is set for signed-in users.
func (s *kanjiService) JLPTKanji(ctx context.Context, level int, userID string) (*models.LevelKanji, error) {
	if level < 1 || level > 5 {
		return nil, ErrInvalidJLPTLevel
	}

	kanji, err := s.provider.KanjiByJLPT(ctx, level)
	if err != nil {
		s.logger.Error("failed to load JLPT kanji", zap.Int("level", level), zap.Error(err))
		return nil, fmt.Errorf("failed to load JLPT N%d kanji: %w", level, err)
	}

	return s.levelKanji(ctx, models.ScopeJLPT, level, kanji, userID)
}

// JoyoKanji retrieves the complete Joyo kanji list
func (s *kanjiService) JoyoKanji(ctx context.Context, userID string) (*models.LevelKanji, error) {
	kanji, err := s.provider.JoyoKanji(ctx)
	if err != nil {
		s.logger.Error("failed to load joyo kanji", zap.Error(err))
		return nil, fmt.Errorf("failed to load joyo kanji: %w", err)
	}

	return s.levelKanji(ctx, models.ScopeJoyo, 0, kanji, userID)
}

func (s *kanjiService) levelKanji(ctx context.Context, scope models.ScopeType, level int, kanji []string, userID string) (*models.LevelKanji, error) {
	if kanji == nil {
		kanji = []string{}
	}
	result := &models.LevelKanji{
		Scope: scope,
		Level: level,
		Kanji: kanji,
		Total: len(kanji),
	}
	if userID == "" {
		return result, nil
	}

	isLearned, err := s.learnedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	completion := progress.Compute(isLearned, kanji)
	result.Progress = &completion

	return result, nil
}

// KanjiPage retrieves the details and words of a kanji
//
// Details and words are fetched concurrently. A words failure only sets WordsError.
// For signed-in users Learned reports the learned state; it is omitted if that lookup fails.
func (s *kanjiService) KanjiPage(ctx context.Context, kanji, userID string) (*models.KanjiPage, error) {
	kanji = strings.TrimSpace(kanji)
	if kanji == "" {
		return nil, ErrKanjiRequired
	}

	page := &models.KanjiPage{Words: []models.Word{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		details, err := s.provider.KanjiDetails(gctx, kanji)
		if err != nil {
			return err
		}
		page.Details = details
		return nil
	})
	g.Go(func() error {
		words, err := s.provider.WordsByKanji(gctx, kanji)
		if err != nil {
			if gctx.Err() == nil {
				s.logger.Warn("failed to load words", zap.String("kanji", kanji), zap.Error(err))
			}
			page.WordsError = WordsLoadError
			return nil
		}
		if words != nil {
			page.Words = words
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load kanji details", zap.String("kanji", kanji), zap.Error(err))
		return nil, fmt.Errorf("failed to load kanji %s: %w", kanji, err)
	}

	if userID != "" {
		_, found, err := s.learned.FindByUserAndKanji(ctx, userID, kanji)
		if err != nil {
			s.logger.Warn("failed to check learned state", zap.String("kanji", kanji), zap.Error(err))
		} else {
			page.Learned = &found
		}
	}

	return page, nil
}

// ByReading retrieves the kanji that have a reading
func (s *kanjiService) ByReading(ctx context.Context, reading string) (*models.ReadingKanji, error) {
	reading = strings.TrimSpace(reading)
	if reading == "" {
		return nil, ErrReadingRequired
	}

	kanji, err := s.provider.KanjiByReading(ctx, reading)
	if err != nil {
		s.logger.Error("failed to load reading kanji", zap.String("reading", reading), zap.Error(err))
		return nil, fmt.Errorf("failed to load kanji for reading %s: %w", reading, err)
	}
	if kanji == nil {
		kanji = []string{}
	}

	return &models.ReadingKanji{Reading: reading, Kanji: kanji}, nil
}

func (s *kanjiService) learnedSet(ctx context.Context, userID string) (func(string) bool, error) {
	learned, err := s.learned.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list learned kanji", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list learned kanji: %w", err)
	}
	return progress.SetOf(learned), nil
}

func isValidGrade(grade int) bool {
	return (grade >= 1 && grade <= 6) || grade == 8
}
