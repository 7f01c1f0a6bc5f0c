// Package progress holds the client side view of a user's learned kanji
package progress

import (
	"math"

	"github.com/japanesestudent/kanji-service/internal/models"
)

// Compute returns how many kanji of scope are learned and the rounded percentage
//
// An empty scope yields 0%.
func Compute(isLearned func(kanji string) bool, scope []string) models.Completion {
	learned := 0
	for _, kanji := range scope {
		if isLearned(kanji) {
			learned++
		}
	}

	completion := models.Completion{Learned: learned, Total: len(scope)}
	if completion.Total > 0 {
		completion.Percentage = int(math.Round(100 * float64(learned) / float64(completion.Total)))
	}
	return completion
}

// SetOf builds a membership predicate over a kanji list
func SetOf(kanji []string) func(string) bool {
	set := make(map[string]struct{}, len(kanji))
	for _, k := range kanji {
		set[k] = struct{}{}
	}
	return func(k string) bool {
		_, ok := set[k]
		return ok
	}
}
