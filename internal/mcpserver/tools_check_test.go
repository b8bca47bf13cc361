package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driftContract documents two operations: a query parameter on the
// collection and a path parameter on the item.
const driftContract = `openapi: 3.0.3
info:
  title: Petstore
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          required: true
          schema:
            type: integer
      responses:
        "200":
          description: pets
  /pets/{petId}:
    get:
      operationId: getPet
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: integer
            format: int64
      responses:
        "200":
          description: a pet
`

// driftSource implements both operations but adds an undocumented debug
// parameter to the collection handler.
const driftSource = `package api

import "net/http"

//oasdrift:handler GET /pets
func ListPets(w http.ResponseWriter, r *http.Request, params ListPetsParams) {
	_ = params
}

// ListPetsParams carries the query parameters for ListPets.
type ListPetsParams struct {
	Limit int64
	Debug bool
}

//oasdrift:handler GET /pets/{petId}
func GetPet(w http.ResponseWriter, r *http.Request, petID int64) {
	_ = petID
}
`

// cleanSource implements the contract exactly.
const cleanSource = `package api

import "net/http"

//oasdrift:handler GET /pets
func ListPets(w http.ResponseWriter, r *http.Request, params ListPetsParams) {
	_ = params
}

// ListPetsParams carries the query parameters for ListPets.
type ListPetsParams struct {
	Limit int64
}

//oasdrift:handler GET /pets/{petId}
func GetPet(w http.ResponseWriter, r *http.Request, petID int64) {
	_ = petID
}
`

func TestCheckTool_ReportsDrift(t *testing.T) {
	contractCache.reset()

	result, out, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Spec:   specInput{Content: driftContract},
		Source: sourceInput{Content: driftSource},
	})
	require.NoError(t, err)
	require.Nil(t, result, "expected structured output, not an error result")

	assert.True(t, out.Drifted)
	assert.Equal(t, "3.0.3", out.Version)
	assert.Equal(t, 2, out.OperationCount)
	assert.Equal(t, 2, out.HandlerCount)
	assert.Equal(t, 2, out.PairCount)
	assert.Equal(t, 0, out.MissingCount)
	assert.Equal(t, 1, out.UndefinedCount)
	assert.Equal(t, 0, out.MismatchCount)
	assert.Equal(t, 1, out.Returned)

	require.Len(t, out.Findings, 1)
	f := out.Findings[0]
	assert.Equal(t, "undefined-parameter", f.Kind)
	assert.Equal(t, "error", f.Severity)
	assert.Equal(t, "debug", f.Parameter)
	assert.Equal(t, "get", f.Method)
	assert.Equal(t, "/pets", f.Path)
	assert.Contains(t, f.Location, "handlers.go")
	assert.Contains(t, f.Message, "undocumented parameter 'debug'")
}

func TestCheckTool_CleanContract(t *testing.T) {
	contractCache.reset()

	result, out, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Spec:   specInput{Content: driftContract},
		Source: sourceInput{Content: cleanSource},
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.False(t, out.Drifted)
	assert.Empty(t, out.Findings)
	assert.Equal(t, 0, out.Returned)
	assert.Equal(t, 2, out.PairCount)
	assert.Empty(t, out.OrphanOperations)
	assert.Empty(t, out.UnmatchedHandlers)
}

func TestCheckTool_SuppressUndefined(t *testing.T) {
	contractCache.reset()

	result, out, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Spec:        specInput{Content: driftContract},
		Source:      sourceInput{Content: driftSource},
		NoUndefined: true,
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.False(t, out.Drifted)
	assert.Empty(t, out.Findings)
	assert.Equal(t, 0, out.UndefinedCount)
}

func TestCheckTool_SeverityOverride(t *testing.T) {
	contractCache.reset()

	result, out, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Spec:     specInput{Content: driftContract},
		Source:   sourceInput{Content: driftSource},
		Severity: "warning",
	})
	require.NoError(t, err)
	require.Nil(t, result)

	require.Len(t, out.Findings, 1)
	assert.Equal(t, "warning", out.Findings[0].Severity)
}

func TestCheckTool_InvalidSeverity(t *testing.T) {
	result, _, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Spec:     specInput{Content: driftContract},
		Source:   sourceInput{Content: driftSource},
		Severity: "fatal",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.Contains(t, text.Text, "invalid severity")
}

func TestCheckTool_MissingSpec(t *testing.T) {
	result, _, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Source: sourceInput{Content: driftSource},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.Contains(t, text.Text, "exactly one of file or content")
}

func TestCheckTool_MissingSource(t *testing.T) {
	contractCache.reset()

	result, _, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Spec: specInput{Content: driftContract},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.Contains(t, text.Text, "exactly one of dir or content")
}

func TestCheckTool_UnparseableSpec(t *testing.T) {
	contractCache.reset()

	result, _, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Spec:   specInput{Content: "this is not an OpenAPI document"},
		Source: sourceInput{Content: cleanSource},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.NotEmpty(t, text.Text)
}

func TestCheckTool_Pagination(t *testing.T) {
	contractCache.reset()

	// Two undocumented parameters produce two findings in field order.
	pagedSource := `package api

import "net/http"

//oasdrift:handler GET /pets
func ListPets(w http.ResponseWriter, r *http.Request, params ListPetsParams) {
	_ = params
}

type ListPetsParams struct {
	Limit   int64
	Debug   bool
	Verbose bool
}
`

	first := checkInput{
		Spec:   specInput{Content: driftContract},
		Source: sourceInput{Content: pagedSource},
		Limit:  1,
	}
	result, out, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, first)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, 2, out.UndefinedCount, "counts cover all findings, not just the page")
	assert.Equal(t, 1, out.Returned)
	require.Len(t, out.Findings, 1)
	assert.Equal(t, "debug", out.Findings[0].Parameter)

	second := first
	second.Offset = 1
	result, out, err = handleCheck(context.Background(), &mcp.CallToolRequest{}, second)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, 1, out.Returned)
	require.Len(t, out.Findings, 1)
	assert.Equal(t, "verbose", out.Findings[0].Parameter)

	third := first
	third.Offset = 2
	result, out, err = handleCheck(context.Background(), &mcp.CallToolRequest{}, third)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, 0, out.Returned)
	assert.Empty(t, out.Findings)
}
