package recipe

import (
	"context"
	"strings"

	"parfumai/internal/ai"
	"parfumai/internal/catalog"
)

const (
	operationGenerate = "generate_recipe"
	operationMatch    = "match_ingredients"

	recipeMaxTokens = 1200
	matchMaxTokens  = 500
)

// GenerateResult is the response of Service.Generate.
type GenerateResult struct {
	Recipe    string    `json:"recipe"`
	Breakdown Breakdown `json:"breakdown"`
	Source    Source    `json:"source"`
	Reason    Reason    `json:"reason,omitempty"`
}

// MatchResult is the response of Service.Match.
type MatchResult struct {
	RecommendedIngredients []string             `json:"recommendedIngredients"`
	Explanation            string               `json:"explanation"`
	Matched                []catalog.Ingredient `json:"matchedIngredients"`
	Source                 Source               `json:"source"`
	Reason                 Reason               `json:"reason,omitempty"`
}

// Service runs recipe generation and ingredient matching, each behind its
// own provider policy.
type Service struct {
	recipes *Policy
	matches *Policy
}

// NewService builds a Service from the two policies. Nil policies behave as
// unconfigured providers.
func NewService(recipes, matches *Policy) *Service {
	if recipes == nil {
		recipes = &Policy{}
	}
	if matches == nil {
		matches = &Policy{}
	}
	return &Service{recipes: recipes, matches: matches}
}

// ProviderStatus reports whether an operation is answered by a live model.
type ProviderStatus struct {
	Provider string `json:"provider,omitempty"`
	Live     bool   `json:"live"`
}

// Providers reports the provider state of both operations, keyed by
// operation name. An operation without a Completer always uses its offline
// fallback.
func (s *Service) Providers() map[string]ProviderStatus {
	return map[string]ProviderStatus{
		operationGenerate: s.recipes.status(),
		operationMatch:    s.matches.status(),
	}
}

func (p *Policy) status() ProviderStatus {
	return ProviderStatus{Provider: p.Provider, Live: p.Completer != nil}
}

// Generate validates the selection and returns a recipe from the provider or
// the offline template. Only validation failures are returned as errors.
func (s *Service) Generate(ctx context.Context, sel Selection) (GenerateResult, error) {
	sel = sel.Normalize()
	if err := sel.Validate(); err != nil {
		return GenerateResult{}, err
	}

	req := ai.Request{System: recipeSystemPrompt, Prompt: BuildPrompt(sel), MaxTokens: recipeMaxTokens}
	out := Resolve(ctx, s.recipes, operationGenerate, req,
		func(text string) (string, bool) {
			text = strings.TrimSpace(text)
			return text, text != ""
		},
		func() string { return FallbackRecipe(sel) },
	)

	return GenerateResult{
		Recipe:    out.Value,
		Breakdown: ComputeBreakdown(sel),
		Source:    out.Source,
		Reason:    out.Reason,
	}, nil
}

// Match recommends raw materials for the selected essences. Live answers are
// resolved against the available list; an answer that names nothing
// available falls back to SmartMatch.
func (s *Service) Match(ctx context.Context, req MatchRequest) (MatchResult, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return MatchResult{}, err
	}

	type pairing struct {
		names       []string
		explanation string
		matched     []catalog.Ingredient
	}

	aiReq := ai.Request{System: matchSystemPrompt, Prompt: BuildMatchPrompt(req), MaxTokens: matchMaxTokens}
	out := Resolve(ctx, s.matches, operationMatch, aiReq,
		func(text string) (pairing, bool) {
			rec, ok := ExtractRecommendations(text)
			if !ok {
				return pairing{}, false
			}
			matched := ResolveMatches(rec.Names, req.AvailableIngredients)
			if len(matched) == 0 && len(req.AvailableIngredients) > 0 {
				return pairing{}, false
			}
			return pairing{names: rec.Names, explanation: rec.Explanation, matched: matched}, true
		},
		func() pairing {
			matched := SmartMatch(req.SelectedEssences, req.AvailableIngredients)
			return pairing{names: catalog.Names(matched), explanation: DefaultExplanation, matched: matched}
		},
	)

	names := out.Value.names
	if names == nil {
		names = []string{}
	}
	matched := out.Value.matched
	if matched == nil {
		matched = []catalog.Ingredient{}
	}
	return MatchResult{
		RecommendedIngredients: names,
		Explanation:            out.Value.explanation,
		Matched:                matched,
		Source:                 out.Source,
		Reason:                 out.Reason,
	}, nil
}
