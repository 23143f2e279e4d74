package store

import "quiz-setup-service/internal/domain"

// applyPatch enforces the merge-vs-replace dichotomy structurally: scalar
// pointers and nested patches merge into the existing value, slices replace
// the existing slice outright when non-nil.
func applyPatch(cfg domain.SetupConfig, patch domain.ConfigPatch) domain.SetupConfig {
	if patch.TemplateID != nil {
		cfg.TemplateID = *patch.TemplateID
	}
	if patch.SkipRoundConfiguration != nil {
		cfg.SkipRoundConfiguration = *patch.SkipRoundConfiguration
	}
	if patch.Rounds != nil {
		cfg.Rounds = patch.Rounds
	}
	if patch.Prizes != nil {
		cfg.Prizes = patch.Prizes
	}
	if patch.Host != nil {
		if patch.Host.Name != nil {
			cfg.Host.Name = *patch.Host.Name
		}
		if patch.Host.Email != nil {
			cfg.Host.Email = *patch.Host.Email
		}
		if patch.Host.Wallet != nil {
			cfg.Host.Wallet = *patch.Host.Wallet
		}
	}
	if patch.Payment != nil {
		if patch.Payment.Method != nil {
			cfg.Payment.Method = *patch.Payment.Method
		}
		if patch.Payment.EntryFee != nil {
			cfg.Payment.EntryFee = *patch.Payment.EntryFee
		}
		if patch.Payment.Currency != nil {
			cfg.Payment.Currency = *patch.Payment.Currency
		}
	}
	if patch.Fundraising != nil {
		cfg.Fundraising = mergeMaps(cfg.Fundraising, patch.Fundraising)
	}
	return cfg
}

// mergeMaps deep-merges incoming into existing: when both sides hold a
// key/value mapping the merge recurses, any other incoming value (arrays
// included) replaces the existing one. Neither input map is mutated.
func mergeMaps(existing, incoming map[string]any) map[string]any {
	out := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range incoming {
		prevMap, prevOK := out[k].(map[string]any)
		nextMap, nextOK := v.(map[string]any)
		if prevOK && nextOK {
			out[k] = mergeMaps(prevMap, nextMap)
			continue
		}
		out[k] = v
	}
	return out
}
