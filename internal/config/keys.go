package config

import "fmt"

// KeyStatus describes one credential for the status display.
type KeyStatus struct {
	Name   string
	Set    bool
	Masked string
}

// maskSecret keeps the first and last two characters visible.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 6 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}

// CheckKeys reports which credentials are configured, with masked
// values safe for printing.
func (c *Config) CheckKeys() []KeyStatus {
	return []KeyStatus{
		{Name: "Gemini API key", Set: c.LLM.GeminiKey != "", Masked: maskSecret(c.LLM.GeminiKey)},
		{Name: "OpenAI API key", Set: c.LLM.OpenAIKey != "", Masked: maskSecret(c.LLM.OpenAIKey)},
		{Name: "Mail address", Set: c.Mail.Address != "", Masked: c.Mail.Address},
		{Name: "Mail app password", Set: c.Mail.AppPassword != "", Masked: maskSecret(c.Mail.AppPassword)},
	}
}

// ActiveLLMKey returns the key for the configured provider, or an
// error naming the missing credential.
func (c *Config) ActiveLLMKey() (string, error) {
	switch c.LLM.Provider {
	case "openai":
		if c.LLM.OpenAIKey == "" {
			return "", fmt.Errorf("llm.openai_key is not set (or REVIEWPULSE_LLM_OPENAI_KEY)")
		}
		return c.LLM.OpenAIKey, nil
	default:
		if c.LLM.GeminiKey == "" {
			return "", fmt.Errorf("llm.gemini_key is not set (or REVIEWPULSE_LLM_GEMINI_KEY)")
		}
		return c.LLM.GeminiKey, nil
	}
}
