package domain

// RoundTypeID identifies a round archetype in the catalog.
type RoundTypeID string

const (
	RoundGeneralTrivia RoundTypeID = "general_trivia"
	RoundWipeout       RoundTypeID = "wipeout"
	RoundSpeedRound    RoundTypeID = "speed_round"
)

// Difficulty is the tier assigned to a round or a whole quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rank orders difficulties for aggregate comparisons. Unknown tiers rank
// below easy so they never promote a quiz to a harder bucket.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 0
}

// RoundConfig holds the pacing and scoring parameters for one round.
// Per-question types use QuestionsPerRound and TimePerQuestion; time-boxed
// types (speed rounds) use TotalTimeSeconds instead. After merging defaults
// with overrides at least one of the two pacing models must be positive.
type RoundConfig struct {
	QuestionsPerRound       int                `json:"questionsPerRound"`
	TimePerQuestion         int                `json:"timePerQuestion,omitempty"`
	TotalTimeSeconds        int                `json:"totalTimeSeconds,omitempty"`
	PointsPerDifficulty     map[Difficulty]int `json:"pointsPerDifficulty,omitempty"`
	PointsLostPerWrong      int                `json:"pointsLostPerWrong,omitempty"`
	PointsLostPerUnanswered int                `json:"pointsLostPerUnanswered,omitempty"`
}

// HasPacing reports whether the config resolves to a playable pacing value.
func (c RoundConfig) HasPacing() bool {
	if c.TotalTimeSeconds > 0 {
		return true
	}
	return c.QuestionsPerRound > 0 && c.TimePerQuestion > 0
}

// TimeBoxed reports whether the round runs against a total time budget
// rather than per-question timing.
func (c RoundConfig) TimeBoxed() bool {
	return c.TotalTimeSeconds > 0
}

// RoundTypeDefinition is an immutable catalog entry for a round archetype.
type RoundTypeDefinition struct {
	ID          RoundTypeID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Defaults    RoundConfig `json:"defaults"`
}

// RoundConfigOverride is a partial RoundConfig: nil fields keep the default,
// set fields replace it. Shallow merge at the config level.
type RoundConfigOverride struct {
	QuestionsPerRound       *int               `json:"questionsPerRound,omitempty"`
	TimePerQuestion         *int               `json:"timePerQuestion,omitempty"`
	TotalTimeSeconds        *int               `json:"totalTimeSeconds,omitempty"`
	PointsPerDifficulty     map[Difficulty]int `json:"pointsPerDifficulty,omitempty"`
	PointsLostPerWrong      *int               `json:"pointsLostPerWrong,omitempty"`
	PointsLostPerUnanswered *int               `json:"pointsLostPerUnanswered,omitempty"`
}

// ApplyTo merges the override into a config, field by field.
func (o RoundConfigOverride) ApplyTo(cfg RoundConfig) RoundConfig {
	if o.QuestionsPerRound != nil {
		cfg.QuestionsPerRound = *o.QuestionsPerRound
	}
	if o.TimePerQuestion != nil {
		cfg.TimePerQuestion = *o.TimePerQuestion
	}
	if o.TotalTimeSeconds != nil {
		cfg.TotalTimeSeconds = *o.TotalTimeSeconds
	}
	if o.PointsPerDifficulty != nil {
		cfg.PointsPerDifficulty = o.PointsPerDifficulty
	}
	if o.PointsLostPerWrong != nil {
		cfg.PointsLostPerWrong = *o.PointsLostPerWrong
	}
	if o.PointsLostPerUnanswered != nil {
		cfg.PointsLostPerUnanswered = *o.PointsLostPerUnanswered
	}
	return cfg
}

// RoundSpec is one entry in a template's round list.
type RoundSpec struct {
	RoundType  RoundTypeID          `json:"roundType"`
	Category   string               `json:"category"`
	Difficulty Difficulty           `json:"difficulty"`
	Override   *RoundConfigOverride `json:"override,omitempty"`
}

// ExceptionOverride is a second-layer template override applied after the
// per-round spec override. It matches either a 1-based round number or a
// round type; the type predicate is the more specific match and is applied
// last, so it wins when both could apply.
type ExceptionOverride struct {
	RoundNumber int                 `json:"roundNumber,omitempty"`
	RoundType   RoundTypeID         `json:"roundType,omitempty"`
	Override    RoundConfigOverride `json:"override"`
}

// QuizTemplate is an immutable catalog preset. Tags are free-form strings
// partitioned by convention into "audience:", "topic:" and "duration:" bands.
type QuizTemplate struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Rounds      []RoundSpec         `json:"rounds"`
	Tags        []string            `json:"tags"`
	Exceptions  []ExceptionOverride `json:"exceptions,omitempty"`
}

// RoundDefinition is a concrete, numbered round in an event. Round numbers
// are 1-based and contiguous; later edits mutate a round in place without
// renumbering, and picking a different template replaces the whole list.
type RoundDefinition struct {
	RoundNumber   int             `json:"roundNumber"`
	RoundType     RoundTypeID     `json:"roundType"`
	Category      string          `json:"category"`
	Difficulty    Difficulty      `json:"difficulty"`
	Config        RoundConfig     `json:"config"`
	EnabledExtras map[string]bool `json:"enabledExtras"`
}

// CustomTemplateID is the sentinel selecting fully manual round setup.
const CustomTemplateID = "custom"
