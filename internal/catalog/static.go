package catalog

import (
	"context"

	"quiz-setup-service/internal/domain"
)

func intp(v int) *int { return &v }

// roundTypes is the closed archetype table. Extending the product means
// adding entries here, not new code paths.
var roundTypes = map[domain.RoundTypeID]domain.RoundTypeDefinition{
	domain.RoundGeneralTrivia: {
		ID:          domain.RoundGeneralTrivia,
		Name:        "General Trivia",
		Description: "Classic multiple-choice trivia, one question at a time.",
		Defaults: domain.RoundConfig{
			QuestionsPerRound: 6,
			TimePerQuestion:   25,
			PointsPerDifficulty: map[domain.Difficulty]int{
				domain.DifficultyEasy:   1,
				domain.DifficultyMedium: 2,
				domain.DifficultyHard:   3,
			},
		},
	},
	domain.RoundWipeout: {
		ID:          domain.RoundWipeout,
		Name:        "Wipeout",
		Description: "Penalty round: wrong or skipped answers cost points.",
		Defaults: domain.RoundConfig{
			QuestionsPerRound: 6,
			TimePerQuestion:   25,
			PointsPerDifficulty: map[domain.Difficulty]int{
				domain.DifficultyEasy:   2,
				domain.DifficultyMedium: 3,
				domain.DifficultyHard:   4,
			},
			PointsLostPerWrong:      2,
			PointsLostPerUnanswered: 3,
		},
	},
	domain.RoundSpeedRound: {
		ID:          domain.RoundSpeedRound,
		Name:        "Speed Round",
		Description: "Answer as many questions as possible inside a fixed window.",
		Defaults: domain.RoundConfig{
			TotalTimeSeconds: 60,
			PointsPerDifficulty: map[domain.Difficulty]int{
				domain.DifficultyEasy:   1,
				domain.DifficultyMedium: 1,
				domain.DifficultyHard:   1,
			},
		},
	},
}

// RoundTypeDefaults returns the default pacing config for a round type.
func RoundTypeDefaults(id domain.RoundTypeID) (domain.RoundConfig, bool) {
	def, ok := roundTypes[id]
	if !ok {
		return domain.RoundConfig{}, false
	}
	return def.Defaults, true
}

// RoundTypes lists the full archetype catalog.
func RoundTypes() []domain.RoundTypeDefinition {
	out := make([]domain.RoundTypeDefinition, 0, len(roundTypes))
	for _, id := range []domain.RoundTypeID{domain.RoundGeneralTrivia, domain.RoundWipeout, domain.RoundSpeedRound} {
		out = append(out, roundTypes[id])
	}
	return out
}

// BuiltinTemplates returns the presets shipped with the service. A Postgres
// deployment seeds these into the quiz_templates table and can add more.
func BuiltinTemplates() []domain.QuizTemplate {
	return []domain.QuizTemplate{
		{
			ID:          "classic-pub-6",
			Name:        "Classic Pub Quiz",
			Description: "Six rounds of general trivia with a wipeout twist at the end.",
			Tags:        []string{"audience:adults", "topic:general", "duration:90min"},
			Rounds: []domain.RoundSpec{
				{RoundType: domain.RoundGeneralTrivia, Category: "General Knowledge", Difficulty: domain.DifficultyEasy},
				{RoundType: domain.RoundGeneralTrivia, Category: "History", Difficulty: domain.DifficultyMedium},
				{RoundType: domain.RoundGeneralTrivia, Category: "Science", Difficulty: domain.DifficultyMedium},
				{RoundType: domain.RoundGeneralTrivia, Category: "Pop Culture", Difficulty: domain.DifficultyMedium},
				{RoundType: domain.RoundGeneralTrivia, Category: "Sport", Difficulty: domain.DifficultyMedium},
				{RoundType: domain.RoundWipeout, Category: "Mixed Bag", Difficulty: domain.DifficultyHard},
			},
		},
		{
			ID:          "family-fun-6",
			Name:        "Family Fun Night",
			Description: "A relaxed mixed-age quiz with gentler pacing.",
			Tags:        []string{"audience:family", "audience:mixed", "topic:general", "duration:75min"},
			Rounds: []domain.RoundSpec{
				{RoundType: domain.RoundGeneralTrivia, Category: "Animals", Difficulty: domain.DifficultyEasy},
				{RoundType: domain.RoundGeneralTrivia, Category: "Movies & TV", Difficulty: domain.DifficultyEasy},
				{RoundType: domain.RoundGeneralTrivia, Category: "Food", Difficulty: domain.DifficultyEasy,
					Override: &domain.RoundConfigOverride{TimePerQuestion: intp(30)}},
				{RoundType: domain.RoundGeneralTrivia, Category: "Music", Difficulty: domain.DifficultyMedium},
				{RoundType: domain.RoundGeneralTrivia, Category: "Geography", Difficulty: domain.DifficultyMedium},
				{RoundType: domain.RoundSpeedRound, Category: "Quick Fire", Difficulty: domain.DifficultyEasy},
			},
		},
		{
			ID:          "marathon-challenge-8",
			Name:        "Marathon Challenge",
			Description: "Eight hard rounds for serious teams; wipeout rounds bite harder.",
			Tags:        []string{"audience:adults", "topic:general", "duration:150min"},
			Rounds: []domain.RoundSpec{
				{RoundType: domain.RoundGeneralTrivia, Category: "World History", Difficulty: domain.DifficultyHard},
				{RoundType: domain.RoundWipeout, Category: "Science & Nature", Difficulty: domain.DifficultyHard},
				{RoundType: domain.RoundGeneralTrivia, Category: "Literature", Difficulty: domain.DifficultyHard},
				{RoundType: domain.RoundGeneralTrivia, Category: "Art & Music", Difficulty: domain.DifficultyHard,
					Override: &domain.RoundConfigOverride{QuestionsPerRound: intp(8)}},
				{RoundType: domain.RoundSpeedRound, Category: "Rapid Recall", Difficulty: domain.DifficultyHard},
				{RoundType: domain.RoundGeneralTrivia, Category: "Geography", Difficulty: domain.DifficultyHard},
				{RoundType: domain.RoundWipeout, Category: "Mixed Bag", Difficulty: domain.DifficultyHard},
				{RoundType: domain.RoundGeneralTrivia, Category: "Grand Finale", Difficulty: domain.DifficultyHard},
			},
			// All wipeout rounds in the marathon carry steeper penalties than
			// the archetype default. Resolved by type predicate, not index.
			Exceptions: []domain.ExceptionOverride{
				{RoundType: domain.RoundWipeout, Override: domain.RoundConfigOverride{
					PointsLostPerWrong:      intp(3),
					PointsLostPerUnanswered: intp(4),
				}},
			},
		},
		{
			ID:          "quick-fire-5",
			Name:        "Quick Fire Fundraiser",
			Description: "Five short rounds built around timed sprints.",
			Tags:        []string{"audience:mixed", "topic:general", "duration:45min"},
			Rounds: []domain.RoundSpec{
				{RoundType: domain.RoundSpeedRound, Category: "Warm Up", Difficulty: domain.DifficultyEasy},
				{RoundType: domain.RoundGeneralTrivia, Category: "General Knowledge", Difficulty: domain.DifficultyEasy,
					Override: &domain.RoundConfigOverride{QuestionsPerRound: intp(5), TimePerQuestion: intp(20)}},
				{RoundType: domain.RoundSpeedRound, Category: "Numbers", Difficulty: domain.DifficultyMedium,
					Override: &domain.RoundConfigOverride{TotalTimeSeconds: intp(90)}},
				{RoundType: domain.RoundGeneralTrivia, Category: "Pot Luck", Difficulty: domain.DifficultyMedium},
				{RoundType: domain.RoundSpeedRound, Category: "Final Sprint", Difficulty: domain.DifficultyMedium},
			},
		},
	}
}

// StaticTemplateLoader serves templates from an in-memory list; it is the
// loader used when no Postgres catalog is configured, and in tests.
type StaticTemplateLoader struct {
	templates []domain.QuizTemplate
}

func NewStaticTemplateLoader(templates []domain.QuizTemplate) *StaticTemplateLoader {
	return &StaticTemplateLoader{templates: templates}
}

func (l *StaticTemplateLoader) LoadTemplates(_ context.Context) ([]domain.QuizTemplate, error) {
	return l.templates, nil
}
