package llm

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownProvider is returned for a provider name nothing registered.
var ErrUnknownProvider = errors.New("llm: unknown provider")

// rawProviderFactory creates a RawProvider instance.
type rawProviderFactory func(cfg Config) (RawProvider, error)

type registration struct {
	factory rawProviderFactory
	info    ProviderInfo
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]registration)
)

// RegisterProvider registers a provider factory.
// Called by provider packages in their init() functions.
func RegisterProvider(name string, factory rawProviderFactory, info ProviderInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = registration{factory: factory, info: info}
}

// New creates a provider from cfg. The returned Provider parses responses and logs
// requests at debug level through cfg.Logger.
func New(cfg Config) (Provider, error) {
	registryMu.RLock()
	reg, ok := registry[cfg.Provider]
	registryMu.RUnlock()
	if !ok {
		names := make([]string, 0)
		for _, info := range Providers() {
			names = append(names, info.Name)
		}
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, cfg.Provider, strings.Join(names, ", "))
	}
	raw, err := reg.factory(cfg)
	if err != nil {
		return nil, err
	}
	return wrapWithParser(raw, cfg.Logger), nil
}

// Lookup returns the metadata of a registered provider.
func Lookup(name string) (ProviderInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[name]
	return reg.info, ok
}

// Providers returns all registered providers sorted by name. Auto-selection and the
// setup prompt both follow this order.
func Providers() []ProviderInfo {
	registryMu.RLock()
	result := make([]ProviderInfo, 0, len(registry))
	for _, reg := range registry {
		result = append(result, reg.info)
	}
	registryMu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// APIKeyEnvVar returns the variable holding the provider's key, or "" for unknown
// providers and providers without a key.
func APIKeyEnvVar(name string) string {
	info, _ := Lookup(name)
	return info.APIKey.EnvVarName
}
