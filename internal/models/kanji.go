package models

// KanjiDetails represents a kanji record returned by the kanji data provider
//
// Nullable provider fields are pointers so that "absent" differs from zero.
type KanjiDetails struct {
	Kanji               string   `json:"kanji"`
	Grade               *int     `json:"grade"`
	StrokeCount         int      `json:"stroke_count"`
	Meanings            []string `json:"meanings"`
	KunReadings         []string `json:"kun_readings"`
	OnReadings          []string `json:"on_readings"`
	NameReadings        []string `json:"name_readings"`
	JLPT                *int     `json:"jlpt"`
	Unicode             string   `json:"unicode"`
	HeisigEn            *string  `json:"heisig_en"`
	FreqMainichiShinbun *int     `json:"freq_mainichi_shinbun"`
	Notes               []string `json:"notes"`
}

// WordMeaning represents a single meaning of a word with its glosses
type WordMeaning struct {
	Glosses []string `json:"glosses"`
}

// WordVariant represents a written form of a word and its pronunciation
type WordVariant struct {
	Written    string   `json:"written"`
	Pronounced string   `json:"pronounced"`
	Priorities []string `json:"priorities"`
}

// Word represents a word record using a kanji
type Word struct {
	Meanings []WordMeaning `json:"meanings"`
	Variants []WordVariant `json:"variants"`
}

// KanjiPage represents everything shown on a single kanji page
//
// WordsError is set instead of failing the whole page when words could not be loaded.
// Learned is only set for signed-in users.
type KanjiPage struct {
	Details    *KanjiDetails `json:"details"`
	Words      []Word        `json:"words"`
	WordsError string        `json:"wordsError,omitempty"`
	Learned    *bool         `json:"learned,omitempty"`
}

// ReadingKanji represents kanji found by a reading
type ReadingKanji struct {
	Reading string   `json:"reading"`
	Kanji   []string `json:"kanji"`
}
