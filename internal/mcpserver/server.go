// Package mcpserver exposes the identification engine as Model Context
// Protocol tools over stdio.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dsablic/licenseid/internal/engine"
)

// Tools binds MCP tool handlers to an engine.
type Tools struct {
	engine *engine.Engine
}

// NewTools returns handlers backed by e.
func NewTools(e *engine.Engine) *Tools {
	return &Tools{engine: e}
}

// MetadataIdentify describes the identify_license tool.
var MetadataIdentify = &mcp.Tool{
	Name: "identify_license",
	Description: "Identify which known open-source license a block of text most closely matches. " +
		"Returns the license name, a score in [0,1] where 1 means the normalized texts are identical, " +
		"and the reference text of the matched license. Scores below about 0.8 mean the text is " +
		"probably not that license.",
}

// InputIdentify is the input for the identify_license tool.
type InputIdentify struct {
	Text string `json:"text" jsonschema:"the license or file header text to identify"`
}

// OutputIdentify is the output for the identify_license tool.
type OutputIdentify struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// Identify handles identify_license.
func (t *Tools) Identify(_ context.Context, _ *mcp.CallToolRequest, input InputIdentify) (*mcp.CallToolResult, OutputIdentify, error) {
	res, err := t.engine.Identify(input.Text)
	if err != nil {
		return nil, OutputIdentify{}, err
	}
	return nil, OutputIdentify{Name: res.Name, Score: res.Score, Text: res.Text}, nil
}

// MetadataNormalize describes the normalize_text tool.
var MetadataNormalize = &mcp.Tool{
	Name:        "normalize_text",
	Description: "Return the canonical form of a text as used for license comparison: trimmed lines, collapsed whitespace, lower case.",
}

// InputNormalize is the input for the normalize_text tool.
type InputNormalize struct {
	Text string `json:"text" jsonschema:"the text to normalize"`
}

// OutputNormalize is the output for the normalize_text tool.
type OutputNormalize struct {
	Text string `json:"text"`
}

// Normalize handles normalize_text.
func (t *Tools) Normalize(_ context.Context, _ *mcp.CallToolRequest, input InputNormalize) (*mcp.CallToolResult, OutputNormalize, error) {
	return nil, OutputNormalize{Text: t.engine.NormalizeText(input.Text)}, nil
}

// MetadataList describes the list_licenses tool.
var MetadataList = &mcp.Tool{
	Name:        "list_licenses",
	Description: "List the names of all reference licenses known to the engine, in lexicographic order.",
}

// InputList is the input for the list_licenses tool.
type InputList struct{}

// OutputList is the output for the list_licenses tool.
type OutputList struct {
	Licenses []string `json:"licenses"`
}

// List handles list_licenses.
func (t *Tools) List(_ context.Context, _ *mcp.CallToolRequest, _ InputList) (*mcp.CallToolResult, OutputList, error) {
	return nil, OutputList{Licenses: t.engine.Licenses()}, nil
}

// MetadataGet describes the get_license tool.
var MetadataGet = &mcp.Tool{
	Name:        "get_license",
	Description: "Return the reference text of a license by name. Unknown names report found=false with suggestions.",
}

// InputGet is the input for the get_license tool.
type InputGet struct {
	Name string `json:"name" jsonschema:"the license name, e.g. Apache-2.0"`
}

// OutputGet is the output for the get_license tool.
type OutputGet struct {
	Found       bool     `json:"found"`
	Text        string   `json:"text,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Get handles get_license.
func (t *Tools) Get(_ context.Context, _ *mcp.CallToolRequest, input InputGet) (*mcp.CallToolResult, OutputGet, error) {
	if input.Name == "" {
		return nil, OutputGet{}, fmt.Errorf("name is required")
	}
	text, ok := t.engine.Original(input.Name)
	if !ok {
		return nil, OutputGet{Suggestions: t.engine.Suggest(input.Name, 3)}, nil
	}
	return nil, OutputGet{Found: true, Text: text}, nil
}

// NewServer registers every tool on a new MCP server.
func NewServer(e *engine.Engine, version string) *mcp.Server {
	t := NewTools(e)
	server := mcp.NewServer(&mcp.Implementation{Name: "licenseid", Version: version}, nil)
	mcp.AddTool(server, MetadataIdentify, t.Identify)
	mcp.AddTool(server, MetadataNormalize, t.Normalize)
	mcp.AddTool(server, MetadataList, t.List)
	mcp.AddTool(server, MetadataGet, t.Get)
	return server
}

// Serve runs the server on stdin/stdout until ctx is done or the client
// disconnects.
func Serve(ctx context.Context, e *engine.Engine, version string) error {
	return NewServer(e, version).Run(ctx, &mcp.StdioTransport{})
}
