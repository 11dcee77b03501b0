package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/gricha/site/mcp"
)

type fakeModel struct {
	resp     *genai.GenerateContentResponse
	err      error
	block    bool
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModel) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, config
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func callResponse(calls ...*genai.FunctionCall) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(calls))
	for _, call := range calls {
		parts = append(parts, &genai.Part{FunctionCall: call})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: RoleModel, Parts: parts}}},
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: RoleModel, Parts: []*genai.Part{{Text: text}}}}},
	}
}

var gameTools = []mcp.Tool{{Name: "look"}, {Name: "go"}}

func TestResolver_Resolve(t *testing.T) {
	testCases := []struct {
		name   string
		model  *fakeModel
		expect *Intent
		hasErr bool
	}{
		{
			name:   "first function call wins",
			model:  &fakeModel{resp: callResponse(&genai.FunctionCall{Name: "go", Args: map[string]any{"direction": "north"}}, &genai.FunctionCall{Name: "look"})},
			expect: &Intent{Tool: "go", Arguments: map[string]interface{}{"direction": "north"}},
		},
		{
			name:   "missing args become empty map",
			model:  &fakeModel{resp: callResponse(&genai.FunctionCall{Name: "look"})},
			expect: &Intent{Tool: "look", Arguments: map[string]interface{}{}},
		},
		{
			name:  "text only is unresolved",
			model: &fakeModel{resp: textResponse("I am not sure what you mean.")},
		},
		{
			name:  "empty response is unresolved",
			model: &fakeModel{resp: &genai.GenerateContentResponse{}},
		},
		{
			name:   "model error",
			model:  &fakeModel{err: errors.New("quota exceeded")},
			hasErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := New(tc.model)
			intent, err := r.Resolve(context.Background(), "walk north", gameTools, nil)
			if tc.hasErr {
				assert.Error(t, err)
				assert.Nil(t, intent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, intent)
		})
	}
}

func TestResolver_Request(t *testing.T) {
	model := &fakeModel{resp: callResponse(&genai.FunctionCall{Name: "look"})}
	history := make([]Entry, 30)
	for i := range history {
		role := RoleUser
		if i%2 == 1 {
			role = RoleModel
		}
		history[i] = Entry{Role: role, Parts: []Part{{Text: fmt.Sprintf("turn %d", i)}}}
	}

	r := New(model, WithModelName("test-model"))
	_, err := r.Resolve(context.Background(), "look", gameTools, history)
	require.NoError(t, err)

	assert.Equal(t, "test-model", model.model)
	require.Len(t, model.contents, 11)
	assert.Equal(t, "turn 20", model.contents[0].Parts[0].Text)
	assert.Equal(t, "turn 29", model.contents[9].Parts[0].Text)
	assert.Equal(t, RoleModel, model.contents[9].Role)
	assert.Equal(t, "look", model.contents[10].Parts[0].Text)
	assert.Equal(t, RoleUser, model.contents[10].Role)

	require.NotNil(t, model.config.SystemInstruction)
	assert.Equal(t, SystemInstruction, model.config.SystemInstruction.Parts[0].Text)
	require.Len(t, model.config.Tools, 1)
	require.Len(t, model.config.Tools[0].FunctionDeclarations, 2)
	assert.Equal(t, "look", model.config.Tools[0].FunctionDeclarations[0].Name)
}

func TestResolver_Timeout(t *testing.T) {
	r := New(&fakeModel{block: true}, WithTimeout(20*time.Millisecond))
	intent, err := r.Resolve(context.Background(), "look", gameTools, nil)
	assert.Nil(t, intent)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolver_NoTools(t *testing.T) {
	r := New(&fakeModel{resp: callResponse(&genai.FunctionCall{Name: "look"})})
	_, err := r.Resolve(context.Background(), "look", nil, nil)
	assert.ErrorIs(t, err, ErrNoTools)
}

func TestTruncate(t *testing.T) {
	history := make([]Entry, 30)
	for i := range history {
		history[i] = Entry{Role: RoleUser, Parts: []Part{{Text: fmt.Sprint(i)}}}
	}

	testCases := []struct {
		name      string
		history   []Entry
		n         int
		expectLen int
		first     string
	}{
		{name: "thirty to ten", history: history, n: 10, expectLen: 10, first: "20"},
		{name: "shorter than limit", history: history[:4], n: 10, expectLen: 4, first: "0"},
		{name: "nil", history: nil, n: 10, expectLen: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := Truncate(tc.history, tc.n)
			require.Len(t, actual, tc.expectLen)
			if tc.expectLen > 0 {
				assert.Equal(t, tc.first, actual[0].Parts[0].Text)
			}
		})
	}

	truncated := Truncate(history, 10)
	truncated[0].Role = RoleModel
	assert.Equal(t, RoleUser, history[20].Role)
}
