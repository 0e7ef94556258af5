package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/ironsheep/image-emails/internal/emails"
	"github.com/ironsheep/image-emails/internal/extractor"
	"github.com/ironsheep/image-emails/internal/imaging"
	"github.com/ironsheep/image-emails/internal/ocr"
	"github.com/ironsheep/image-emails/internal/orientation"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "emails_extract").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "emails_extract":
		return s.handleEmailsExtract(ctx, args)
	case "emails_from_text":
		return s.handleEmailsFromText(args)
	case "email_validate":
		return s.handleEmailValidate(args)
	case "image_orientation":
		return s.handleImageOrientation(ctx, args)
	case "image_info":
		return s.handleImageInfo(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Extraction Handlers ===

type emailsExtractArgs struct {
	Path        string `json:"path"`
	Output      string `json:"output"`
	SaveRotated *bool  `json:"save_rotated"`
}

func (s *Server) handleEmailsExtract(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a emailsExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p := *s.pipeline
	if a.SaveRotated != nil {
		p.SaveRotated = *a.SaveRotated
	}

	report, err := p.Run(ctx, extractor.Job{Input: a.Path, Output: a.Output})
	if err != nil {
		return nil, err
	}
	if report.Emails == nil {
		report.Emails = []string{}
	}
	return report, nil
}

type emailsFromTextArgs struct {
	Text string `json:"text"`
}

// Rejection is a candidate that failed validation.
type Rejection struct {
	Candidate string `json:"candidate"`
	Reason    string `json:"reason"`
}

// FromTextResult is returned by the emails_from_text tool.
type FromTextResult struct {
	Candidates []string    `json:"candidates"`
	Emails     []string    `json:"emails"`
	Rejected   []Rejection `json:"rejected"`
}

func (s *Server) handleEmailsFromText(args json.RawMessage) (interface{}, error) {
	var a emailsFromTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	result := FromTextResult{
		Candidates: slices.Collect(emails.Candidates(a.Text)),
		Rejected:   []Rejection{},
	}
	if result.Candidates == nil {
		result.Candidates = []string{}
	}

	set := emails.Collect(slices.Values(result.Candidates), s.validator, func(candidate string, err error) {
		result.Rejected = append(result.Rejected, Rejection{Candidate: candidate, Reason: reason(err)})
	})
	result.Emails = set.Sorted()
	if result.Emails == nil {
		result.Emails = []string{}
	}
	return result, nil
}

type emailValidateArgs struct {
	Email string `json:"email"`
}

// ValidateResult is returned by the email_validate tool.
type ValidateResult struct {
	Email      string `json:"email"`
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (s *Server) handleEmailValidate(args json.RawMessage) (interface{}, error) {
	var a emailValidateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	result := ValidateResult{Email: a.Email}
	normalized, err := s.validator.Validate(a.Email)
	if err != nil {
		result.Reason = reason(err)
		return result, nil
	}
	result.Valid = true
	result.Normalized = normalized
	return result, nil
}

func reason(err error) string {
	var invalid *emails.InvalidError
	if errors.As(err, &invalid) {
		return invalid.Reason
	}
	return err.Error()
}

// === Image Inspection Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

// OrientationResult is returned by the image_orientation tool.
type OrientationResult struct {
	ocr.Orientation
	Threshold   float64 `json:"threshold"`
	WouldRotate bool    `json:"would_rotate"`
}

func (s *Server) handleImageOrientation(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.engine == nil {
		return nil, ocr.ErrNoEngine
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	est, err := s.engine.DetectOrientation(ctx, img, s.pipeline.Config)
	if err != nil {
		return nil, err
	}

	n := s.pipeline.Normalizer
	if n == nil {
		n = orientation.New(s.engine)
	}
	return OrientationResult{
		Orientation: est,
		Threshold:   n.ThresholdDegrees(),
		WouldRotate: n.ShouldRotate(est),
	}, nil
}

// InfoResult is returned by the image_info tool.
type InfoResult struct {
	Image *imaging.ImageInfo `json:"image"`
	OCR   ocr.Info           `json:"ocr"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(a.Path)
	if err != nil {
		return nil, err
	}
	return InfoResult{Image: info, OCR: ocr.Describe(s.engine)}, nil
}
