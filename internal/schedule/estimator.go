package schedule

import (
	"math"
	"strings"

	"quiz-setup-service/internal/domain"
)

// Pacing constants. The overhead multipliers account for instructions,
// answer reveal and scoring time around the raw answering window; each is
// shared across every round of its pacing model.
const (
	perQuestionOverheadMultiplier = 1.5
	timeBoxedOverheadMultiplier   = 2.0

	// BreakMinutes is the fixed length of one scheduled break.
	BreakMinutes = 10.0

	// fallbackRoundMinutes stands in for a round whose config resolves to no
	// usable pacing; a zero-length round would silently vanish from the
	// total and from break placement.
	fallbackRoundMinutes = 5.0
)

// BreakStrategy names a break placement mode. The two modes coexist on
// purpose: older templates were authored against the fixed-interval rule
// and the two are not equivalent, so the caller picks.
type BreakStrategy string

const (
	// BreakTagAware places breaks from round count, overall difficulty and
	// audience tags.
	BreakTagAware BreakStrategy = "tag-aware"
	// BreakFixedInterval is the legacy rule: one break after every third
	// round, unconditionally.
	BreakFixedInterval BreakStrategy = "fixed-interval"
)

// ParseBreakStrategy validates a caller-supplied strategy name. Empty input
// selects the tag-aware mode.
func ParseBreakStrategy(raw string) (BreakStrategy, error) {
	switch BreakStrategy(raw) {
	case "":
		return BreakTagAware, nil
	case BreakTagAware:
		return BreakTagAware, nil
	case BreakFixedInterval:
		return BreakFixedInterval, nil
	}
	return "", domain.ErrUnknownBreakStrategy
}

// RoundEstimate carries the display minutes for one round. Minutes is
// rounded to one decimal; exact retains full precision for summation.
type RoundEstimate struct {
	RoundNumber int     `json:"roundNumber"`
	Minutes     float64 `json:"minutes"`

	exact float64
}

// Estimate is the computed running plan for a round list.
type Estimate struct {
	Rounds       []RoundEstimate `json:"rounds"`
	BreaksAfter  []int           `json:"breaksAfter"`
	BreakMinutes float64         `json:"breakMinutes"`
	TotalMinutes int             `json:"totalMinutes"`
	Strategy     BreakStrategy   `json:"strategy"`
}

// EstimateSchedule computes per-round minutes, break positions and the total
// running time for a round list. Tags come from the selected template and
// drive the tag-aware strategy's audience rule; they may be nil.
func EstimateSchedule(rounds []domain.RoundDefinition, tags []string, strategy BreakStrategy) Estimate {
	est := Estimate{
		Rounds:       make([]RoundEstimate, 0, len(rounds)),
		BreakMinutes: BreakMinutes,
		Strategy:     strategy,
	}

	total := 0.0
	for _, r := range rounds {
		exact := roundMinutes(r.Config)
		total += exact
		est.Rounds = append(est.Rounds, RoundEstimate{
			RoundNumber: r.RoundNumber,
			Minutes:     math.Round(exact*10) / 10,
			exact:       exact,
		})
	}

	est.BreaksAfter = placeBreaks(rounds, tags, strategy)
	total += float64(len(est.BreaksAfter)) * BreakMinutes
	est.TotalMinutes = int(math.Round(total))
	return est
}

// roundMinutes applies one of the two pacing models. Time-boxed rounds use
// the total window; per-question rounds use count times per-question time.
func roundMinutes(cfg domain.RoundConfig) float64 {
	switch {
	case cfg.TimeBoxed():
		return float64(cfg.TotalTimeSeconds) * timeBoxedOverheadMultiplier / 60
	case cfg.QuestionsPerRound > 0 && cfg.TimePerQuestion > 0:
		return float64(cfg.QuestionsPerRound) * float64(cfg.TimePerQuestion) * perQuestionOverheadMultiplier / 60
	}
	return fallbackRoundMinutes
}

// placeBreaks returns the 1-based round numbers after which a break is
// scheduled. Breaks sit strictly between rounds: never before the first and
// never after the last.
func placeBreaks(rounds []domain.RoundDefinition, tags []string, strategy BreakStrategy) []int {
	count := len(rounds)
	if count < 2 {
		return nil
	}

	if strategy == BreakFixedInterval {
		return everyN(count, 3)
	}

	young := hasYoungAudience(tags)
	overall := overallDifficulty(rounds)

	switch {
	case count >= 5 && count <= 6 && young:
		mid := int(math.Round(float64(count) / 2))
		if mid < 1 || mid >= count {
			return nil
		}
		return []int{mid}
	case overall == domain.DifficultyHard || count >= 7:
		return everyN(count, 2)
	}
	return everyN(count, 3)
}

func everyN(count, n int) []int {
	var positions []int
	for after := n; after < count; after += n {
		positions = append(positions, after)
	}
	return positions
}

// youngAudienceMarkers are the audience tag values that indicate a young or
// mixed-age crowd needing an earlier single break.
var youngAudienceMarkers = []string{"family", "kids", "children", "young", "mixed", "school"}

func hasYoungAudience(tags []string) bool {
	for _, tag := range tags {
		value, ok := strings.CutPrefix(strings.ToLower(tag), "audience:")
		if !ok {
			continue
		}
		for _, marker := range youngAudienceMarkers {
			if strings.Contains(value, marker) {
				return true
			}
		}
	}
	return false
}

// overallDifficulty is the most frequent tier across rounds, ties resolved
// toward the harder tier.
func overallDifficulty(rounds []domain.RoundDefinition) domain.Difficulty {
	counts := map[domain.Difficulty]int{}
	for _, r := range rounds {
		counts[r.Difficulty]++
	}
	best := domain.DifficultyMedium
	bestCount := 0
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		if counts[d] > bestCount || (counts[d] == bestCount && counts[d] > 0 && d.Rank() > best.Rank()) {
			best = d
			bestCount = counts[d]
		}
	}
	return best
}
