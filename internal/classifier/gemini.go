package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini categorizes transactions with a Gemini model. Identical
// descriptions are sent once and the answer is applied to all of them.
type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini creates a Gemini classifier. An empty apiKey lets the SDK read
// GEMINI_API_KEY or GOOGLE_API_KEY from the environment.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{models: models, model: model}
}

type geminiAnswer struct {
	UniqueDescription string `json:"uniqueDescription"`
	Category          string `json:"category"`
}

// Categorize asks the model for one category per distinct description.
// Items whose description the model did not answer are left out.
func (g *Gemini) Categorize(ctx context.Context, items []Item) ([]Result, error) {
	if len(items) == 0 {
		return nil, nil
	}

	byDesc, err := g.ask(ctx, uniqueDescriptions(items))
	if err != nil {
		return nil, err
	}

	var out []Result
	for _, it := range items {
		if cat, ok := byDesc[it.Description]; ok {
			out = append(out, Result{ID: it.ID, Category: cat})
		}
	}
	return out, nil
}

// CategorizeOne categorizes a single description.
func (g *Gemini) CategorizeOne(ctx context.Context, description string) (string, error) {
	byDesc, err := g.ask(ctx, []string{description})
	if err != nil {
		return "", err
	}
	cat, ok := byDesc[description]
	if !ok {
		return "", badResponse(fmt.Errorf("no category for %q", description))
	}
	return cat, nil
}

func (g *Gemini) ask(ctx context.Context, descriptions []string) (map[string]string, error) {
	list, err := json.Marshal(descriptions)
	if err != nil {
		return nil, fmt.Errorf("encoding descriptions: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: categorizePrompt + string(list)}},
		},
	}
	resp, err := g.models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, badResponse(fmt.Errorf("empty response from model"))
	}

	var answers []geminiAnswer
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &answers); err != nil {
		return nil, badResponse(err)
	}

	out := make(map[string]string, len(answers))
	for _, a := range answers {
		cat := strings.TrimSpace(a.Category)
		if cat == "" {
			continue
		}
		out[a.UniqueDescription] = cat
	}
	return out, nil
}

const categorizePrompt = "For each element of the array below return a JSON object with the element and the spending " +
	"category that best describes it. Categories are things like Takeout, Coffee, Shopping, Grocery, " +
	"Transportation; be granular where you can.\n" +
	"Return ONLY a JSON array of objects of the form " +
	`[{"uniqueDescription": "<element>", "category": "<category>"}]` + ".\n" +
	"Do NOT wrap the response in code fences.\n\n" +
	"Array: "

// cleanModelJSON strips Markdown fences and any text around the outermost
// JSON array.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
