package translate

import (
	"context"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/DevSymphony/cmdlens/internal/patterns"
)

// ConfidenceThreshold is the local confidence above which remote fallback is skipped.
const ConfidenceThreshold = 0.7

// Engine composes cache lookup, local matching and remote fallback.
// A single Engine is meant to be shared by concurrent callers.
type Engine struct {
	ruleSets []patterns.RuleSet
	local    *LocalTranslator
	cache    Cache
	remote   Remote
	log      zerolog.Logger
	flight   flight

	// construction inputs
	rulesDir string
	rulesFS  fs.FS
}

// Option is a functional option for configuring the engine.
type Option func(*Engine)

// WithRulesDir loads rule sets from a directory on disk.
func WithRulesDir(dir string) Option {
	return func(e *Engine) { e.rulesDir = dir }
}

// WithRulesFS loads rule sets from fsys instead of the embedded defaults.
func WithRulesFS(fsys fs.FS) Option {
	return func(e *Engine) { e.rulesFS = fsys }
}

// WithRuleSets uses already compiled rule sets.
func WithRuleSets(sets []patterns.RuleSet) Option {
	return func(e *Engine) { e.ruleSets = sets }
}

// WithRemote sets the fallback translator. Without one, translation is local only.
func WithRemote(remote Remote) Option {
	return func(e *Engine) { e.remote = remote }
}

// WithCache replaces the default FractionCache.
func WithCache(cache Cache) Option {
	return func(e *Engine) { e.cache = cache }
}

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates an engine. Rule sets are loaded once here and never change.
// Rule sets come from, in order of preference: WithRuleSets, WithRulesDir, WithRulesFS,
// then the embedded defaults. Only an unusable rules directory is an error.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}

	if e.ruleSets == nil {
		loader := patterns.NewLoader(e.log)
		switch {
		case e.rulesDir != "":
			sets, err := loader.LoadDir(e.rulesDir)
			if err != nil {
				return nil, err
			}
			e.ruleSets = sets
		case e.rulesFS != nil:
			e.ruleSets = loader.LoadFS(e.rulesFS)
		default:
			e.ruleSets = loader.LoadFS(patterns.DefaultFS())
		}
	}
	if e.cache == nil {
		e.cache = NewFractionCache(DefaultCacheCapacity)
	}

	matcher := patterns.NewMatcher(e.ruleSets)
	e.local = NewLocalTranslator(matcher)
	e.log.Debug().Int("rule_sets", len(e.ruleSets)).Int("rules", matcher.Len()).Msg("translation engine ready")
	return e, nil
}

// Translate explains output produced by command. It never fails: when the remote is
// unavailable or errors, the local result is returned.
//
// Protocol:
//  1. a cached result is returned with Source set to SourceCache;
//  2. a local result with confidence above ConfidenceThreshold is cached and returned;
//  3. if useRemote and a remote is available, a successful remote result is cached and returned;
//  4. otherwise the local result is returned without caching it.
//
// Concurrent calls for the same input share one computation. A caller whose ctx ends
// first gets the local result without waiting for the others.
func (e *Engine) Translate(ctx context.Context, command, output string, useRemote bool) Result {
	if cached, ok := e.cache.Get(command, output); ok {
		e.log.Debug().Str("command", command).Msg("translation served from cache")
		return cached
	}

	key := flightKey(command, output, useRemote)
	result, shared, ok := e.flight.do(ctx, key, func(workCtx context.Context) Result {
		return e.translate(workCtx, command, output, useRemote)
	})
	if !ok {
		e.log.Debug().Err(ctx.Err()).Str("command", command).Msg("caller gave up, using local result")
		return e.local.Translate(output)
	}
	if shared {
		e.log.Debug().Str("command", command).Msg("translation shared with concurrent caller")
	}
	return result
}

func (e *Engine) translate(ctx context.Context, command, output string, useRemote bool) Result {
	local := e.local.Translate(output)
	if local.Confidence > ConfidenceThreshold {
		e.cache.Put(command, output, local)
		return local
	}

	if !useRemote || e.remote == nil || !e.remote.Available() {
		return local
	}

	e.log.Debug().Str("command", command).Float64("confidence", local.Confidence).Msg("local confidence low, asking remote")
	remote, err := e.remote.Translate(ctx, command, output)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		e.log.Warn().Err(err).Str("command", command).Msg("remote translation failed, using local result")
		return local
	}

	e.cache.Put(command, output, remote)
	return remote
}

// TranslateLocally runs only the local rule matcher.
func (e *Engine) TranslateLocally(output string) Result {
	return e.local.Translate(output)
}

// ExplainCommand returns a short explanation of a well-known command.
func (e *Engine) ExplainCommand(command string) (string, bool) {
	return ExplainCommand(command)
}

// RuleSets returns the loaded rule sets in priority order. Callers must not modify them.
func (e *Engine) RuleSets() []patterns.RuleSet {
	return e.ruleSets
}

// RemoteAvailable reports whether remote fallback can be used at all.
func (e *Engine) RemoteAvailable() bool {
	return e.remote != nil && e.remote.Available()
}

// ClearCache drops all cached results.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// CacheLen returns the number of cached results.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}
