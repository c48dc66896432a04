// Package agent wires LLM providers to the roles that use them. The config
// file picks a global active provider and allows per-role overrides, and the
// API can switch the active provider at runtime.
package agent

import (
	"context"
	"fmt"
	"sync"

	"valuation_builder/pkg/core/llm"
)

type Config struct {
	ActiveProvider string                `yaml:"active_provider"`
	Roles          map[string]RoleConfig `yaml:"roles"`
}

type RoleConfig struct {
	Provider    string `yaml:"provider"` // optional override
	Model       string `yaml:"model"`    // optional model override
	Description string `yaml:"description"`
}

type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = "groq"
	}
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"groq":   &llm.GroqProvider{},
			"gemini": &llm.GeminiProvider{},
		},
	}
}

// GetProvider resolves the provider for a role: role override first, then the
// global active provider, then groq.
func (m *Manager) GetProvider(role string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if roleCfg, ok := m.config.Roles[role]; ok && roleCfg.Provider != "" {
		if p, ok := m.providers[roleCfg.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["groq"]
}

// ExecutePrompt resolves the role's provider and runs one exchange.
func (m *Manager) ExecutePrompt(ctx context.Context, role string, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(role)

	m.mu.RLock()
	if roleCfg, ok := m.config.Roles[role]; ok && roleCfg.Model != "" {
		if options == nil {
			options = map[string]interface{}{}
		}
		if _, set := options["model"]; !set {
			options["model"] = roleCfg.Model
		}
	}
	m.mu.RUnlock()

	return provider.GenerateResponse(ctx, prompt, systemPrompt, options)
}

// SetGlobalProvider switches the active provider at runtime.
func (m *Manager) SetGlobalProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	fmt.Printf("[AGENT] Global provider set to: %s\n", name)
	return nil
}

// GetActiveProvider returns the name of the current global provider.
func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Available lists the registered provider names.
func (m *Manager) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}
