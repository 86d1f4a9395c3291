package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider calls an external inference service (e.g. a RoBERTa sentiment
// model behind a small HTTP wrapper). The service returns a label plus a
// probability per label; the provider folds those into a signed score.
type HTTPProvider struct {
	BaseURL string
	Model   string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, model string, timeout time.Duration) Provider {
	if baseURL == "" {
		baseURL = "http://localhost:8501"
	}
	if model == "" {
		model = "sentiment-latest"
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type classifyResponse struct {
	Label  string             `json:"label"`
	Scores map[string]float64 `json:"scores"`
}

func (p *HTTPProvider) Classify(ctx context.Context, text string) (*Classification, error) {
	reqBody := classifyRequest{
		Model: p.Model,
		Text:  text,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/classify", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: classify error: %s", ErrUnavailable, string(bodyBytes))
	}

	var cr classifyResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	confidence := map[Label]float64{
		LabelPositive: cr.Scores["positive"],
		LabelNegative: cr.Scores["negative"],
		LabelNeutral:  cr.Scores["neutral"],
	}

	label := Label(cr.Label)
	switch label {
	case LabelPositive, LabelNegative, LabelNeutral:
	default:
		// Unknown label from the backend: pick the highest-confidence one.
		label = dominantLabel(confidence)
	}

	return &Classification{
		Label:      label,
		Score:      confidence[LabelPositive] - confidence[LabelNegative],
		Confidence: confidence,
	}, nil
}

func isClientTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var t timeouter
	if errors.As(err, &t) {
		return t.Timeout()
	}
	return false
}

func dominantLabel(confidence map[Label]float64) Label {
	best := LabelNeutral
	bestScore := -1.0
	for label, score := range confidence {
		if score > bestScore {
			best = label
			bestScore = score
		}
	}
	return best
}
