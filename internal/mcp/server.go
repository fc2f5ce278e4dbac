// Package mcp exposes threat generation to AI coding agents over the
// Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mark-chris/tmgen/internal/rules"
	"github.com/mark-chris/tmgen/internal/threat"
)

// Server is the tmgen MCP server
type Server struct {
	generator *threat.Generator
	counter   *threat.TokenCounter
	version   string
	logger    *zap.Logger

	methodology string
	mode        threat.Mode
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDefaults sets the methodology and mode used when a call omits them
func WithDefaults(methodology string, mode threat.Mode) Option {
	return func(s *Server) {
		s.methodology = methodology
		s.mode = mode
	}
}

// WithTokenCounter sets the counter used for agent responses
func WithTokenCounter(c *threat.TokenCounter) Option {
	return func(s *Server) { s.counter = c }
}

// NewServer creates a new MCP server
func NewServer(g *threat.Generator, version string, opts ...Option) *Server {
	s := &Server{
		generator:   g,
		version:     version,
		logger:      zap.NewNop(),
		methodology: string(threat.STRIDE),
		mode:        threat.ModeContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MCPServer builds the protocol server with all tools registered
func (s *Server) MCPServer() *mcpserver.MCPServer {
	srv := mcpserver.NewMCPServer(
		"tmgen",
		s.version,
		mcpserver.WithRecovery(),
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools(srv)
	return srv
}

// Serve runs the server over the given streams until ctx is cancelled or
// the input is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.MCPServer())
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	s.logger.Info("mcp server listening on stdio", zap.String("version", s.version))
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) registerTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool("generate_threats",
			mcp.WithDescription("Generate candidate threats for a threat model diagram element. Returns threat descriptors named in the requested methodology's vocabulary."),
			mcp.WithObject("element",
				mcp.Description("Diagram element: {id, name, attributes: {type: tm.Actor|tm.Process|tm.Store|tm.Flow}, isPublicNetwork, isEncrypted, providesAuthentication, ...}"),
				mcp.Required(),
			),
			mcp.WithString("methodology",
				mcp.Description(fmt.Sprintf(
					"STRIDE, LINDDUN, CIA or MRTM. Omitted uses the configured default (%s); any other value uses MRTM",
					s.methodology)),
			),
			mcp.WithString("mode",
				mcp.Description("Generation pipeline: per-element or context"),
				mcp.Enum("per-element", "context"),
			),
			mcp.WithString("verbosity",
				mcp.Description("Output format: 'agent' for concise, 'human' for detailed"),
				mcp.Enum("agent", "human"),
				mcp.DefaultString("agent"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGenerate,
	)

	srv.AddTool(
		mcp.NewTool("get_rule",
			mcp.WithDescription("Get a threat rule by its rule id, including its conditions"),
			mcp.WithString("rule_id",
				mcp.Description("Rule UUID"),
				mcp.Required(),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetRule,
	)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if err := validateNoUnknownParams(args, generateParams); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	el, err := decodeElementArg(args["element"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	methodology := request.GetString("methodology", s.methodology)

	modeArg := request.GetString("mode", "")
	if err := validateMode(modeArg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode := s.mode
	if modeArg != "" {
		mode = threat.Mode(modeArg)
	}

	verbosity := request.GetString("verbosity", "agent")
	if err := validateVerbosity(verbosity); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	threats, err := s.generator.Generate(ctx, el, methodology, mode)
	if err != nil {
		s.logger.Warn("generation failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	var out string
	if verbosity == "human" {
		out, err = threat.FormatThreats(threats, threat.FormatJSON)
	} else {
		resp := threat.BuildAgentResponse(threats, threat.ResolveMethodology(methodology), 0, s.counter)
		var data []byte
		data, err = json.MarshalIndent(resp, "", "  ")
		out = string(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleGetRule(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := validateNoUnknownParams(request.GetArguments(), getRuleParams); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := request.RequireString("rule_id")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: rule_id"), nil
	}
	if err := validateRuleID(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rule, catalog, err := s.generator.Catalogs().Get(id)
	if err != nil {
		if errors.Is(err, rules.ErrRuleNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("rule not found: %s", id)), nil
		}
		return nil, err
	}

	out, err := threat.FormatRule(rule, catalog, threat.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule: %w", err)
	}
	return mcp.NewToolResultText(out), nil
}

// decodeElementArg accepts the element as a JSON object or as a JSON string
func decodeElementArg(raw any) (*threat.Element, error) {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("missing required argument: element")
	case string:
		data = []byte(v)
	case map[string]any:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("invalid element: %w", err)
		}
	default:
		return nil, fmt.Errorf("element must be an object")
	}
	return threat.DecodeElement(data)
}
