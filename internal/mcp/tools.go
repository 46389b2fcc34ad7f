package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/jyamaiken/triple-triad-app/internal/game"
)

// activeSession is the singleton session (one per stdio process).
var activeSession *Session

// Launch configuration applied to new matches, set by main.
var (
	defaultRules    = game.DefaultRules()
	defaultCardFile string
	sessionLogger   *zap.Logger
)

// SetDefaults stores the launch configuration applied by start_match.
func SetDefaults(rules game.Rules, cardFile string, logger *zap.Logger) {
	defaultRules = rules
	defaultCardFile = cardFile
	sessionLogger = logger
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startMatchTool(), handleStartMatch)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(nextRoundTool(), handleNextRound)
	s.AddTool(resignTool(), handleResign)
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a best-of-three card series against the CPU. "+
			"You play one side; the CPU moves immediately whenever it is up, so every "+
			"returned state is yours to act on. Only one match runs at a time."),
		mcp.WithString("side", mcp.Description("Side to play: 'A' (default) or 'B'")),
		mcp.WithString("difficulty", mcp.Description("CPU difficulty: low, mid, high, or expert (defaults to the launch setting)")),
		mcp.WithNumber("seed", mcp.Description("Seed for a reproducible series (0 or omitted picks one)")),
		mcp.WithBoolean("same", mcp.Description("Enable the SAME capture rule (defaults to the launch setting)")),
		mcp.WithBoolean("plus", mcp.Description("Enable the PLUS capture rule (defaults to the launch setting)")),
		mcp.WithBoolean("elemental", mcp.Description("Enable elemental board tiles (defaults to the launch setting)")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current board, your hand, scores, and any events since the last call. Read-only."),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Place a card from your hand on an empty tile. The CPU then plays until it is "+
			"your turn again. Tiles are numbered 0-8, row by row from the top left."),
		mcp.WithNumber("hand", mcp.Required(), mcp.Description("0-based index into your hand")),
		mcp.WithNumber("tile", mcp.Required(), mcp.Description("Board tile index 0-8")),
	)
}

func nextRoundTool() mcp.Tool {
	return mcp.NewTool("next_round",
		mcp.WithDescription("Deal the next round once the current one has ended."),
	)
}

func resignTool() mcp.Tool {
	return mcp.NewTool("resign",
		mcp.WithDescription("Abandon the current series so a new one can be started."),
	)
}

// --- Tool handlers ---

func handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A match is already running. Use resign to abandon it first."), nil
	}

	cfg := SessionConfig{
		Rules:    defaultRules,
		Agent:    game.PlayerA,
		Seed:     int64(request.GetInt("seed", 0)),
		CardFile: defaultCardFile,
		Logger:   sessionLogger,
	}
	switch side := request.GetString("side", "A"); side {
	case "", "A", "a":
		cfg.Agent = game.PlayerA
	case "B", "b":
		cfg.Agent = game.PlayerB
	default:
		return mcp.NewToolResultErrorf("side must be 'A' or 'B', got %q", side), nil
	}
	if d := request.GetString("difficulty", ""); d != "" {
		diff, err := game.ParseDifficulty(d)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid difficulty: %v", err), nil
		}
		cfg.Rules.Difficulty = diff
	}
	cfg.Rules.Same = request.GetBool("same", cfg.Rules.Same)
	cfg.Rules.Plus = request.GetBool("plus", cfg.Rules.Plus)
	cfg.Rules.Elemental = request.GetBool("elemental", cfg.Rules.Elemental)

	sess, err := NewSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.State())), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.State())), nil
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	hand := request.GetInt("hand", -1)
	tile := request.GetInt("tile", -1)

	resp, err := activeSession.PlayCard(hand, tile)
	if err != nil {
		return mcp.NewToolResultErrorf("Move rejected: %v", err), nil
	}
	if resp.SeriesOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleNextRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	resp, err := activeSession.NextRound()
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot advance: %v", err), nil
	}
	if resp.SeriesOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleResign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	resp := activeSession.Resign()
	activeSession = nil
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
