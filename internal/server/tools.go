package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Extraction
		{
			Name:        "emails_extract",
			Description: "Find all email addresses in an image. The page is turned upright when the OCR engine reports a rotation above 5 degrees. Optionally writes the addresses, one per line, to an output file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional path of a text file to write the addresses to. Nothing is written when no address is found.",
					},
					"save_rotated": map[string]interface{}{
						"type":        "boolean",
						"description": "Keep a copy of a rotated page next to the output file. Defaults to the server configuration.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "emails_from_text",
			Description: "Find email addresses in already recognized text. Returns the raw candidates, the valid normalized addresses and the rejected candidates with reasons.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to search, e.g. OCR output",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "email_validate",
			Description: "Check whether a string is a syntactically valid email address and return its normalized form. No DNS or mailbox checks are made.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"email": map[string]interface{}{
						"type":        "string",
						"description": "Address to validate",
					},
				},
				"required": []string{"email"},
			},
		},

		// Image inspection
		{
			Name:        "image_orientation",
			Description: "Run orientation detection on an image and report the rotation the OCR engine suggests and whether extraction would rotate the page.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Get image dimensions, format and file size, plus the OCR backend in use.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
