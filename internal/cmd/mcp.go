package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DevSymphony/cmdlens/internal/mcp"
)

var mcpNoRemote bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server to integrate with LLM tools",
	Long: `Start Model Context Protocol (MCP) server.
Coding assistants can translate command output through stdio.

Tools provided by MCP server:
- translate_output: Translate terminal output into a plain-language explanation
- explain_command: Explain a well-known command
- list_rule_sets: List loaded rule sets

Communicates via stdio for integration with Claude Desktop, Cursor, and other MCP clients.`,
	Example: `  cmdlens mcp
  cmdlens mcp --no-remote`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().BoolVar(&mcpNoRemote, "no-remote", false, "never call the language model")
}

func runMCP(cmd *cobra.Command, args []string) error {
	s, err := newSession(!mcpNoRemote)
	if err != nil {
		return err
	}
	defer s.Close()

	server := mcp.NewServer(s.engine, s.useRemote, version, logger)
	return server.Run(cmd.Context())
}
