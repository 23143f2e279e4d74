package schedule

import (
	"github.com/rs/zerolog"
	"quiz-setup-service/internal/domain"
)

// DefaultsFunc resolves the default pacing config for a round type.
type DefaultsFunc func(domain.RoundTypeID) (domain.RoundConfig, bool)

// fallbackRoundConfig keeps a round playable when a template references a
// round type the catalog does not know. Non-zero question count and timing
// so the round neither vanishes from the estimate nor stalls the event.
var fallbackRoundConfig = domain.RoundConfig{
	QuestionsPerRound: 6,
	TimePerQuestion:   25,
	PointsPerDifficulty: map[domain.Difficulty]int{
		domain.DifficultyEasy:   1,
		domain.DifficultyMedium: 2,
		domain.DifficultyHard:   3,
	},
}

// BuildRounds materializes the concrete round list for a template. Round
// numbers are 1-based in template order. Config resolution per round:
// archetype defaults, then the spec's own override, then index-matched
// exceptions, then type-matched exceptions; the later layer always wins.
func BuildRounds(tpl domain.QuizTemplate, defaults DefaultsFunc, log zerolog.Logger) []domain.RoundDefinition {
	rounds := make([]domain.RoundDefinition, 0, len(tpl.Rounds))
	for i, spec := range tpl.Rounds {
		num := i + 1

		cfg, ok := defaults(spec.RoundType)
		if !ok {
			log.Warn().
				Str("template", tpl.ID).
				Str("roundType", string(spec.RoundType)).
				Int("round", num).
				Msg("round type missing from catalog, using fallback config")
			cfg = fallbackRoundConfig
		}
		if spec.Override != nil {
			cfg = spec.Override.ApplyTo(cfg)
		}
		for _, exc := range tpl.Exceptions {
			if exc.RoundNumber == num && exc.RoundType == "" {
				cfg = exc.Override.ApplyTo(cfg)
			}
		}
		for _, exc := range tpl.Exceptions {
			if exc.RoundType != "" && exc.RoundType == spec.RoundType {
				cfg = exc.Override.ApplyTo(cfg)
			}
		}

		rounds = append(rounds, domain.RoundDefinition{
			RoundNumber:   num,
			RoundType:     spec.RoundType,
			Category:      spec.Category,
			Difficulty:    spec.Difficulty,
			Config:        cfg,
			EnabledExtras: map[string]bool{},
		})
	}
	return rounds
}
