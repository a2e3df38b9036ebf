package ai

import (
	"fmt"
	"strings"
)

// Provider names a hosted completion service.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
)

type providerDefault struct {
	model   string
	baseURL string
}

var providerDefaults = map[Provider]providerDefault{
	ProviderOpenAI: {model: "gpt-4o", baseURL: "https://api.openai.com/v1"},
	ProviderGroq:   {model: "llama-3.1-8b-instant", baseURL: "https://api.groq.com/openai/v1"},
}

// ParseProvider validates a provider name from configuration.
func ParseProvider(value string) (Provider, error) {
	provider := Provider(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := providerDefaults[provider]; !ok {
		return "", fmt.Errorf("ai: unknown provider %q", value)
	}
	return provider, nil
}
