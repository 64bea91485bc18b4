package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel   = "text-embedding-004"
	defaultTimeout = 5 * time.Second

	taskSemanticSimilarity = "SEMANTIC_SIMILARITY"
)

type modelsAPI interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder embeds skill strings with the Gemini API. The client is built on
// first use and shared afterwards.
type Embedder struct {
	apiKey    string
	modelName string
	timeout   time.Duration

	connect func(ctx context.Context) (modelsAPI, error)

	once    sync.Once
	models  modelsAPI
	initErr error
}

func NewEmbedder(apiKey, model string, timeout time.Duration) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	e := &Embedder{apiKey: apiKey, modelName: model, timeout: timeout}
	e.connect = e.newClient
	return e, nil
}

func (e *Embedder) newClient(ctx context.Context) (modelsAPI, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  e.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return client.Models, nil
}

func (e *Embedder) client() (modelsAPI, error) {
	e.once.Do(func() {
		e.models, e.initErr = e.connect(context.Background())
	})
	return e.models, e.initErr
}

// Embed returns one vector per text, in order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	models, err := e.client()
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: t}},
		})
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := models.EmbedContent(ctx, e.modelName, contents, &genai.EmbedContentConfig{
		TaskType: taskSemanticSimilarity,
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", got, len(texts))
	}

	out := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("gemini returned an empty embedding for %q", texts[i])
		}
		out[i] = emb.Values
	}
	return out, nil
}

func (e *Embedder) Model() string {
	if e == nil {
		return ""
	}
	return e.modelName
}
