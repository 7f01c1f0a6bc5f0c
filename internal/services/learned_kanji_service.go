package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/japanesestudent/kanji-service/internal/models"
	"go.uber.org/zap"
)

// MaxKanjiLength is the longest kanji value accepted, in characters
const MaxKanjiLength = 32

var (
	// ErrKanjiRequired is returned when the kanji value is missing or blank
	ErrKanjiRequired = errors.New("kanji is required")
	// ErrKanjiTooLong is returned when the kanji value exceeds MaxKanjiLength characters
	ErrKanjiTooLong = errors.New("kanji is too long")
)

// LearnedKanjiRepository is the interface that wraps methods for user_learned_kanji table data access
type LearnedKanjiRepository interface {
	// Method FindByUserAndKanji retrieve the learned record of a user and a kanji.
	//
	// "found" is false, together with a nil record and nil error, when the user has not learned the kanji.
	FindByUserAndKanji(ctx context.Context, userID, kanji string) (*models.LearnedKanji, bool, error)
	// Method Create insert a learned record unless the (user, kanji) pair already exists.
	//
	// "created" is true when a new record was inserted and false when the pair was already present,
	// including the case when a concurrent request inserted it first. Neither case is an error.
	Create(ctx context.Context, userID, kanji string) (bool, error)
	// Method DeleteByUserAndKanji remove the learned record of a user and a kanji.
	//
	// Removing a record that does not exist is not an error.
	DeleteByUserAndKanji(ctx context.Context, userID, kanji string) error
	// Method ListByUser retrieve all kanji learned by a user.
	//
	// An empty, non-nil slice is returned when the user has learned nothing.
	ListByUser(ctx context.Context, userID string) ([]string, error)
}

type learnedKanjiService struct {
	repo   LearnedKanjiRepository
	logger *zap.Logger
}

// NewLearnedKanjiService creates a new learned kanji service
func NewLearnedKanjiService(repo LearnedKanjiRepository, logger *zap.Logger) *learnedKanjiService {
	return &learnedKanjiService{
		repo:   repo,
		logger: logger,
	}
}

// MarkLearned records kanji as learned by userID
//
// Returns true when the kanji was newly marked and false when it already was.
func (s *learnedKanjiService) MarkLearned(ctx context.Context, userID, kanji string) (bool, error) {
	kanji, err := normalizeKanji(kanji)
	if err != nil {
		return false, err
	}

	created, err := s.repo.Create(ctx, userID, kanji)
	if err != nil {
		s.logger.Error("failed to mark kanji as learned", zap.Error(err), zap.String("user_id", userID), zap.String("kanji", kanji))
		return false, fmt.Errorf("failed to mark kanji as learned: %w", err)
	}

	return created, nil
}

// UnmarkLearned removes kanji from the learned set of userID
//
// Succeeds whether or not the kanji was learned before.
func (s *learnedKanjiService) UnmarkLearned(ctx context.Context, userID, kanji string) error {
	kanji, err := normalizeKanji(kanji)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByUserAndKanji(ctx, userID, kanji); err != nil {
		s.logger.Error("failed to unmark learned kanji", zap.Error(err), zap.String("user_id", userID), zap.String("kanji", kanji))
		return fmt.Errorf("failed to unmark learned kanji: %w", err)
	}

	return nil
}

// IsLearned reports whether userID has learned kanji
func (s *learnedKanjiService) IsLearned(ctx context.Context, userID, kanji string) (bool, error) {
	kanji, err := normalizeKanji(kanji)
	if err != nil {
		return false, err
	}

	_, found, err := s.repo.FindByUserAndKanji(ctx, userID, kanji)
	if err != nil {
		s.logger.Error("failed to check learned kanji", zap.Error(err), zap.String("user_id", userID), zap.String("kanji", kanji))
		return false, fmt.Errorf("failed to check learned kanji: %w", err)
	}

	return found, nil
}

// ListLearned retrieves the full learned set of userID with its size
func (s *learnedKanjiService) ListLearned(ctx context.Context, userID string) (*models.LearnedKanjiList, error) {
	kanji, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list learned kanji", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list learned kanji: %w", err)
	}
	if kanji == nil {
		kanji = []string{}
	}

	return &models.LearnedKanjiList{Kanji: kanji, Count: len(kanji)}, nil
}

// normalizeKanji trims surrounding whitespace and validates the result
func normalizeKanji(kanji string) (string, error) {
	kanji = strings.TrimSpace(kanji)
	if kanji == "" {
		return "", ErrKanjiRequired
	}
	if utf8.RuneCountInString(kanji) > MaxKanjiLength {
		return "", ErrKanjiTooLong
	}
	return kanji, nil
}
