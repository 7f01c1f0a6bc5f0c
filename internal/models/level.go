package models

// ScopeType represents the kind of kanji list a level belongs to
type ScopeType string

const (
	ScopeGrade ScopeType = "grade"
	ScopeJLPT  ScopeType = "jlpt"
	ScopeJoyo  ScopeType = "joyo"
)

// LevelInfo holds static descriptive metadata of a grade or a JLPT level
//
// KanjiCount is the nominal size of the level and may differ slightly from the provider list.
// JLPT-only fields are left empty for grades.
type LevelInfo struct {
	Level       int      `json:"level"`
	Name        string   `json:"name"`
	KanjiCount  int      `json:"kanjiCount"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Examples    []string `json:"examples"`
	Topics      []string `json:"topics"`
	StudyHours  string   `json:"studyHours,omitempty"`
	PassRate    string   `json:"passRate,omitempty"`
	Skills      string   `json:"skills,omitempty"`
}

// Completion represents how much of a kanji list a user has learned
type Completion struct {
	Learned    int `json:"learned"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// LevelOverview represents a level card: static metadata plus the user's completion
//
// Progress is omitted for anonymous users. LoadError is set when the level list could not be
// fetched, in which case Progress is omitted as well.
type LevelOverview struct {
	LevelInfo
	Progress  *Completion `json:"progress,omitempty"`
	LoadError string      `json:"loadError,omitempty"`
}

// LevelKanji represents the full kanji list of a level
type LevelKanji struct {
	Scope    ScopeType   `json:"scope"`
	Level    int         `json:"level,omitempty"`
	Kanji    []string    `json:"kanji"`
	Total    int         `json:"total"`
	Progress *Completion `json:"progress,omitempty"`
}

// Grades holds metadata of the elementary school grades.
//
// Grade 8 (secondary school) is a valid list on the provider but has no card.
var Grades = []LevelInfo{
	{
		Level:       1,
		Name:        "Grade 1",
		KanjiCount:  80,
		Description: "Basic kanji for everyday objects, numbers, and simple concepts",
		Difficulty:  "Beginner",
		Examples:    []string{"一", "二", "三", "人", "大", "小"},
		Topics:      []string{"Numbers", "Family", "Body parts", "Nature"},
	},
	{
		Level:       2,
		Name:        "Grade 2",
		KanjiCount:  160,
		Description: "Building on Grade 1 with more complex everyday vocabulary",
		Difficulty:  "Beginner",
		Examples:    []string{"時", "間", "分", "年", "月", "日"},
		Topics:      []string{"Time", "Directions", "Animals", "Weather"},
	},
	{
		Level:       3,
		Name:        "Grade 3",
		KanjiCount:  200,
		Description: "Introduction to more abstract concepts and compound words",
		Difficulty:  "Elementary",
		Examples:    []string{"勉", "強", "宿", "題", "研", "究"},
		Topics:      []string{"School", "Study", "Society", "Science"},
	},
	{
		Level:       4,
		Name:        "Grade 4",
		KanjiCount:  202,
		Description: "Advanced elementary kanji with complex meanings",
		Difficulty:  "Elementary",
		Examples:    []string{"都", "道", "府", "県", "議", "会"},
		Topics:      []string{"Geography", "Government", "History", "Culture"},
	},
	{
		Level:       5,
		Name:        "Grade 5",
		KanjiCount:  193,
		Description: "Pre-intermediate kanji for academic and formal contexts",
		Difficulty:  "Intermediate",
		Examples:    []string{"政", "治", "経", "済", "統", "計"},
		Topics:      []string{"Politics", "Economics", "Statistics", "Media"},
	},
	{
		Level:       6,
		Name:        "Grade 6",
		KanjiCount:  191,
		Description: "Advanced elementary kanji preparing for junior high school",
		Difficulty:  "Intermediate",
		Examples:    []string{"憲", "法", "民", "主", "独", "立"},
		Topics:      []string{"Law", "Democracy", "Philosophy", "International"},
	},
}

// JLPTLevels holds metadata of the JLPT levels from N5 (beginner) to N1 (advanced).
var JLPTLevels = []LevelInfo{
	{
		Level:       5,
		Name:        "N5",
		KanjiCount:  79,
		Description: "Basic kanji for everyday situations and simple conversations",
		Difficulty:  "Beginner",
		Examples:    []string{"私", "今", "何", "時", "行", "来"},
		Topics:      []string{"Daily life", "Time", "Family", "Basic verbs"},
		StudyHours:  "150-300",
		PassRate:    "70%",
		Skills:      "Basic reading of hiragana, katakana, and simple kanji",
	},
	{
		Level:       4,
		Name:        "N4",
		KanjiCount:  166,
		Description: "Expanded vocabulary for practical daily communication",
		Difficulty:  "Elementary",
		Examples:    []string{"会", "社", "電", "話", "買", "物"},
		Topics:      []string{"Work", "Shopping", "Transportation", "Health"},
		StudyHours:  "300-600",
		PassRate:    "60%",
		Skills:      "Understanding basic texts and everyday conversations",
	},
	{
		Level:       3,
		Name:        "N3",
		KanjiCount:  367,
		Description: "Intermediate kanji for more complex topics and situations",
		Difficulty:  "Intermediate",
		Examples:    []string{"経", "験", "意", "見", "考", "方"},
		Topics:      []string{"Experience", "Opinions", "Abstract concepts", "Business"},
		StudyHours:  "450-900",
		PassRate:    "45%",
		Skills:      "Comprehending everyday topics and expressing opinions",
	},
	{
		Level:       2,
		Name:        "N2",
		KanjiCount:  367,
		Description: "Advanced kanji for academic and professional contexts",
		Difficulty:  "Upper-Intermediate",
		Examples:    []string{"政", "治", "経", "済", "文", "化"},
		Topics:      []string{"Politics", "Economics", "Culture", "Academic texts"},
		StudyHours:  "600-1200",
		PassRate:    "35%",
		Skills:      "Understanding newspapers, magazines, and complex discussions",
	},
	{
		Level:       1,
		Name:        "N1",
		KanjiCount:  1232,
		Description: "Mastery level kanji for native-like comprehension",
		Difficulty:  "Advanced",
		Examples:    []string{"哲", "学", "概", "念", "抽", "象"},
		Topics:      []string{"Philosophy", "Literature", "Specialized fields", "Abstract concepts"},
		StudyHours:  "900-1800",
		PassRate:    "25%",
		Skills:      "Native-level reading and understanding of complex materials",
	},
}
