// Package mcp exposes the translation engine as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/DevSymphony/cmdlens/internal/translate"
)

// Server is a MCP (Model Context Protocol) server.
// It communicates via JSON-RPC over stdio.
type Server struct {
	engine    *translate.Engine
	useRemote bool
	version   string
	log       zerolog.Logger
}

// NewServer creates a new MCP server instance around engine.
func NewServer(engine *translate.Engine, useRemote bool, version string, log zerolog.Logger) *Server {
	return &Server{
		engine:    engine,
		useRemote: useRemote,
		version:   version,
		log:       log,
	}
}

// TranslateInput represents the input schema for the translate_output tool.
type TranslateInput struct {
	Command   string `json:"command,omitempty" jsonschema:"The command line that produced the output (optional, improves caching and remote explanations)"`
	Output    string `json:"output" jsonschema:"Raw stdout/stderr text of the command"`
	UseRemote *bool  `json:"use_remote,omitempty" jsonschema:"Allow the language model fallback when local rules are not confident (default: server setting)"`
}

// ExplainInput represents the input schema for the explain_command tool.
type ExplainInput struct {
	Command string `json:"command" jsonschema:"Command line to explain, e.g. 'git status'"`
}

// ExplainOutput is the result of explain_command.
type ExplainOutput struct {
	Command     string `json:"command"`
	Known       bool   `json:"known"`
	Explanation string `json:"explanation,omitempty"`
}

// ListRuleSetsInput takes no parameters.
type ListRuleSetsInput struct{}

// RuleSetSummary describes one loaded rule set.
type RuleSetSummary struct {
	Name     string   `json:"name"`
	Rules    int      `json:"rules"`
	Commands []string `json:"commands,omitempty"`
}

// ListRuleSetsOutput is the result of list_rule_sets, in matching priority order.
type ListRuleSetsOutput struct {
	RuleSets []RuleSetSummary `json:"rule_sets"`
}

// Run serves the tools over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Int("rule_sets", len(s.engine.RuleSets())).Bool("remote", s.useRemote && s.engine.RemoteAvailable()).Msg("cmdlens MCP server started (stdio mode)")
	return s.sdkServer().Run(ctx, &sdkmcp.StdioTransport{})
}

// sdkServer builds the go-sdk server with all tools registered.
func (s *Server) sdkServer() *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "cmdlens",
		Version: s.version,
	}, nil)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "translate_output",
		Description: "Translate raw terminal output into a plain-language explanation with a category, emoji and suggestion.",
	}, s.handleTranslate)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "explain_command",
		Description: "Explain what a well-known command (git, npm, docker, basic shell) does.",
	}, s.handleExplain)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_rule_sets",
		Description: "List the loaded translation rule sets in matching priority order.",
	}, s.handleListRuleSets)

	return server
}

func (s *Server) handleTranslate(ctx context.Context, req *sdkmcp.CallToolRequest, input TranslateInput) (*sdkmcp.CallToolResult, translate.Result, error) {
	useRemote := s.useRemote
	if input.UseRemote != nil {
		useRemote = *input.UseRemote && s.useRemote
	}

	result := s.engine.Translate(ctx, input.Command, input.Output, useRemote)
	s.log.Debug().Str("command", input.Command).Str("source", string(result.Source)).Float64("confidence", result.Confidence).Msg("translate_output")

	return textResult(formatResult(result)), result, nil
}

func (s *Server) handleExplain(ctx context.Context, req *sdkmcp.CallToolRequest, input ExplainInput) (*sdkmcp.CallToolResult, ExplainOutput, error) {
	out := ExplainOutput{Command: input.Command}
	out.Explanation, out.Known = s.engine.ExplainCommand(input.Command)

	text := out.Explanation
	if !out.Known {
		text = fmt.Sprintf("No explanation available for %q.", input.Command)
	}
	return textResult(text), out, nil
}

func (s *Server) handleListRuleSets(ctx context.Context, req *sdkmcp.CallToolRequest, input ListRuleSetsInput) (*sdkmcp.CallToolResult, ListRuleSetsOutput, error) {
	sets := s.engine.RuleSets()
	out := ListRuleSetsOutput{RuleSets: make([]RuleSetSummary, 0, len(sets))}
	for _, set := range sets {
		summary := RuleSetSummary{Name: set.Name, Rules: len(set.Rules)}
		for name := range set.Commands {
			summary.Commands = append(summary.Commands, name)
		}
		sort.Strings(summary.Commands)
		out.RuleSets = append(out.RuleSets, summary)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, ListRuleSetsOutput{}, fmt.Errorf("failed to marshal rule sets: %w", err)
	}
	return textResult(string(data)), out, nil
}

// formatResult renders a translation the way an assistant can quote it directly.
func formatResult(r translate.Result) string {
	var b strings.Builder
	b.WriteString(r.TranslatedText)
	if r.Suggestion != "" {
		fmt.Fprintf(&b, "\n\n💡 %s", r.Suggestion)
	}
	fmt.Fprintf(&b, "\n\n[category: %s, confidence: %.2f, source: %s]", r.Category, r.Confidence, r.Source)
	return b.String()
}

func textResult(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}
