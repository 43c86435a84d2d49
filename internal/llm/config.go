// Package llm provides the language model client used by the online agent executor.
// Model choice is expressed as a tier so sourcing and vetting can be tuned independently.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for cheap, high-volume calls
	TierLite ModelTier = "lite"
	// TierStandard is for candidate sourcing
	TierStandard ModelTier = "standard"
	// TierAdvanced is for multi-rubric vetting
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Default generation settings
const (
	DefaultTemperature     float32 = 0.1
	DefaultMaxOutputTokens int32   = 8192
)

// Config holds the model configuration for the application
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: standard, then lite
	for _, fallback := range []ModelTier{TierStandard, TierLite} {
		if model, ok := c.Models[fallback]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config using model for tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	clone := *c
	clone.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		clone.Models[k] = v
	}
	clone.Models[tier] = model
	return &clone
}
