package mcp

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MCPRoute exposes the dispatcher over HTTP on the root path.
type MCPRoute struct {
	dispatcher *Dispatcher
}

// NewMCPRoute creates the route wrapper for a dispatcher.
func NewMCPRoute(dispatcher *Dispatcher) *MCPRoute {
	return &MCPRoute{dispatcher: dispatcher}
}

// RegisterRouter mounts the protocol endpoints.
func (route *MCPRoute) RegisterRouter(router *gin.Engine) {
	router.POST("/", route.handlePost)
	router.GET("/", route.handleGet)
}

// handlePost services single and batched envelopes. Responses mirror the
// request shape: an array in yields an array out, with notifications
// contributing no entries.
func (route *MCPRoute) handlePost(reqCtx *gin.Context) {
	body, err := io.ReadAll(reqCtx.Request.Body)
	if err != nil {
		reqCtx.JSON(http.StatusInternalServerError,
			errorResponse(nil, codeInternalError, "Internal error", "failed to read request body: "+err.Error()))
		return
	}

	envelopes, batch, err := DecodeEnvelopes(body)
	if err != nil {
		log.Error().Err(err).Msg("malformed MCP request body")
		reqCtx.JSON(http.StatusInternalServerError,
			errorResponse(nil, codeInternalError, "Internal error", err.Error()))
		return
	}

	ctx := reqCtx.Request.Context()
	responses := make([]*Response, 0, len(envelopes))
	for _, envelope := range envelopes {
		if resp := route.dispatcher.Dispatch(ctx, envelope); resp != nil {
			responses = append(responses, resp)
		}
	}

	if batch {
		reqCtx.JSON(http.StatusOK, responses)
		return
	}
	if len(responses) == 0 {
		// Notifications get an empty acknowledgement.
		reqCtx.JSON(http.StatusOK, gin.H{})
		return
	}
	reqCtx.JSON(http.StatusOK, responses[0])
}

// handleGet answers plain GETs with a static server descriptor. Clients
// that ask for an event stream instead get a minimal keep-alive shim: an
// initial handshake event followed by periodic pings. The stream carries
// no protocol traffic.
func (route *MCPRoute) handleGet(reqCtx *gin.Context) {
	if !strings.Contains(reqCtx.GetHeader("Accept"), "text/event-stream") {
		reqCtx.JSON(http.StatusOK, gin.H{
			"name":     "SearXNG MCP Server",
			"version":  serverVersion,
			"protocol": "MCP HTTP",
			"endpoints": gin.H{
				"mcp":    "POST /",
				"health": "GET /healthz",
			},
		})
		return
	}

	reqCtx.Header("Content-Type", "text/event-stream")
	reqCtx.Header("Cache-Control", "no-cache")
	reqCtx.Header("Connection", "keep-alive")
	reqCtx.Header("Access-Control-Allow-Origin", "*")
	reqCtx.Header("Access-Control-Allow-Headers", "*")

	reqCtx.Writer.WriteString("data: {\"jsonrpc\":\"2.0\",\"method\":\"initialized\",\"params\":{}}\n\n")
	reqCtx.Writer.Flush()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	clientGone := reqCtx.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case <-ticker.C:
			reqCtx.Writer.WriteString("data: {\"type\":\"ping\"}\n\n")
			reqCtx.Writer.Flush()
		}
	}
}
