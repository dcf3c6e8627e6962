// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai defines the generic content-generation data model.
package genai

// =============================================================================
// ROLES
// =============================================================================

// Conversation roles. RoleModel is the provider-neutral name for the
// assistant side; adapters rename it to whatever their wire format uses.
const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
	RoleTool   = "tool"
)

// =============================================================================
// PART UNION
// =============================================================================

// Part is one atomic content unit within a turn. The union is closed:
// the only implementations are TextPart, FunctionCallPart, and
// FunctionResponsePart. Adapters switch exhaustively over these.
type Part interface {
	isPart()
}

// TextPart carries plain text.
type TextPart struct {
	Text string
}

// FunctionCallPart carries a model-issued function call.
type FunctionCallPart struct {
	Name string
	Args map[string]any
}

// FunctionResponsePart carries the result of executing a function call.
type FunctionResponsePart struct {
	Name     string
	Response map[string]any
}

func (TextPart) isPart()             {}
func (FunctionCallPart) isPart()     {}
func (FunctionResponsePart) isPart() {}

// =============================================================================
// CONTENT
// =============================================================================

// Content is one conversation turn: a role plus an ordered part sequence.
type Content struct {
	Role  string
	Parts []Part
}

// Text builds a single-part user turn from a plain string. This is the
// typed replacement for passing a bare string as a turn.
func Text(s string) Content {
	return Content{Role: RoleUser, Parts: []Part{TextPart{Text: s}}}
}

// NewContent builds a turn with the given role and parts.
func NewContent(role string, parts ...Part) Content {
	return Content{Role: role, Parts: parts}
}

// NewModelContent builds a model-role turn from plain text.
func NewModelContent(s string) Content {
	return Content{Role: RoleModel, Parts: []Part{TextPart{Text: s}}}
}

// HasFunctionCalls reports whether any part of the turn is a function call.
func (c Content) HasFunctionCalls() bool {
	for _, p := range c.Parts {
		if _, ok := p.(FunctionCallPart); ok {
			return true
		}
	}
	return false
}

// HasFunctionResponses reports whether any part of the turn is a
// function response.
func (c Content) HasFunctionResponses() bool {
	for _, p := range c.Parts {
		if _, ok := p.(FunctionResponsePart); ok {
			return true
		}
	}
	return false
}
