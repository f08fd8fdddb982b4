package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/benreichman/SearXNG-MCP-Server/internal/domain/websearch"
)

const notificationPrefix = "notifications/"

const (
	serverName      = "searxng-search"
	serverVersion   = "1.0.0"
	protocolVersion = "2024-11-05"
)

// Dispatcher routes decoded envelopes to protocol methods and tool
// handlers. It carries no mutable state beyond configuration; one
// instance serves all requests.
type Dispatcher struct {
	service           *websearch.Service
	tools             []ToolDescriptor
	defaultMaxResults int
}

// NewDispatcher builds a dispatcher over the web search service. The
// tool list is constructed once here and never mutated.
func NewDispatcher(service *websearch.Service, defaultMaxResults int) *Dispatcher {
	return &Dispatcher{
		service:           service,
		tools:             toolDescriptors(defaultMaxResults),
		defaultMaxResults: defaultMaxResults,
	}
}

// Dispatch processes one envelope and returns its response, or nil for
// notifications. Notifications are logged for their side effects only;
// any failure they would have produced is swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, env Envelope) *Response {
	if strings.HasPrefix(env.Method, notificationPrefix) {
		log.Info().Str("method", env.Method).Msg("received notification")
		return nil
	}

	result, err := d.route(ctx, env)
	if err != nil {
		var rpcErr *rpcError
		if errors.As(err, &rpcErr) {
			log.Warn().Str("method", env.Method).Str("reason", rpcErr.message).Msg("rejecting request")
			return errorResponse(env.ID, rpcErr.code, rpcErr.message, "")
		}
		log.Error().Err(err).Str("method", env.Method).Msg("request failed")
		return errorResponse(env.ID, codeInternalError, "Internal error", err.Error())
	}
	return resultResponse(env.ID, result)
}

func (d *Dispatcher) route(ctx context.Context, env Envelope) (any, error) {
	switch env.Method {
	case "initialize":
		return d.initializeResult(), nil
	case "tools/list":
		return map[string]any{"tools": d.tools}, nil
	case "tools/call":
		return d.callTool(ctx, env.Params)
	default:
		return nil, errMethodNotFound("unknown method: %s", env.Method)
	}
}

func (d *Dispatcher) initializeResult() map[string]any {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    serverName,
			"version": serverVersion,
		},
	}
}
