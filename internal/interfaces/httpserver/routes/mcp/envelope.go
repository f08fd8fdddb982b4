package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON-RPC error codes carried on the wire. Parse failures use
// codeInternalError rather than the usual -32700; that shape is part of
// the published contract and consumers match on it.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Envelope is one JSON-RPC-shaped request or notification. ID is kept
// raw so string, integer and explicit-null ids are echoed back verbatim.
type Envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is the reply to one non-notification envelope. Exactly one of
// Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// ErrorObject is the JSON-RPC error member.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// rpcError is a classified client fault raised during routing. Anything
// else escaping dispatch is reported as an internal error.
type rpcError struct {
	code    int
	message string
}

func (e *rpcError) Error() string {
	return e.message
}

func errMethodNotFound(format string, args ...any) *rpcError {
	return &rpcError{code: codeMethodNotFound, message: fmt.Sprintf(format, args...)}
}

func errInvalidParams(format string, args ...any) *rpcError {
	return &rpcError{code: codeInvalidParams, message: fmt.Sprintf(format, args...)}
}

func errorResponse(id json.RawMessage, code int, message, data string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

func resultResponse(id json.RawMessage, result any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

// DecodeEnvelopes parses a request body holding either a single envelope
// or an array of envelopes, normalizing to a slice so callers only ever
// handle the plural case. The returned flag reports whether the body was
// an array.
func DecodeEnvelopes(body []byte) ([]Envelope, bool, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var envelopes []Envelope
		if err := json.Unmarshal(trimmed, &envelopes); err != nil {
			return nil, true, fmt.Errorf("invalid request batch: %w", err)
		}
		return envelopes, true, nil
	}

	var envelope Envelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, false, fmt.Errorf("invalid request body: %w", err)
	}
	return []Envelope{envelope}, false, nil
}
