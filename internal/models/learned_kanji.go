package models

import "time"

// LearnedKanji represents a single kanji marked as learned by a user
//
// The pair of UserID and Kanji is unique.
type LearnedKanji struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kanji     string    `json:"kanji"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LearnedKanjiRequest represents a mark/unmark learned kanji request body
type LearnedKanjiRequest struct {
	Kanji string `json:"kanji" validate:"required,max=32"`
}

// LearnedKanjiList represents all kanji learned by a user
type LearnedKanjiList struct {
	Kanji []string `json:"kanji"`
	Count int      `json:"count"`
}

// LearnedStatus represents whether a single kanji is learned
type LearnedStatus struct {
	Learned bool `json:"learned"`
}

// MessageResponse represents a plain message response
type MessageResponse struct {
	Message string `json:"message"`
}
