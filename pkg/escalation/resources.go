package escalation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FallbackRegion is used when a user has no declared or inferred region.
const FallbackRegion = "GLOBAL"

// Resource is the crisis contact information surfaced at CRITICAL level.
type Resource struct {
	Region string `json:"region"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Text   string `json:"text,omitempty"`
	Chat   string `json:"chat,omitempty"`
}

// Directory resolves crisis resources for a region. Lookups must be bounded;
// a failed or slow lookup degrades to the built-in fallback table rather
// than blocking or failing the turn.
type Directory interface {
	Lookup(ctx context.Context, region string) Resource
}

var builtinResources = map[string]Resource{
	"US": {
		Region: "US",
		Name:   "988 Suicide & Crisis Lifeline",
		Phone:  "988",
		Text:   "Text HOME to 741741",
		Chat:   "https://988lifeline.org/chat/",
	},
	"UK": {
		Region: "UK",
		Name:   "Samaritans",
		Phone:  "116 123",
		Text:   "Text SHOUT to 85258",
		Chat:   "https://www.samaritans.org/",
	},
	"CA": {
		Region: "CA",
		Name:   "Talk Suicide Canada",
		Phone:  "1-833-456-4566",
		Text:   "Text HOME to 686868",
		Chat:   "https://talksuicide.ca/",
	},
	"AU": {
		Region: "AU",
		Name:   "Lifeline Australia",
		Phone:  "13 11 14",
		Text:   "Text 0477 13 11 14",
		Chat:   "https://www.lifeline.org.au/crisis-chat/",
	},
	"IN": {
		Region: "IN",
		Name:   "AASRA",
		Phone:  "9152987821",
		Chat:   "https://www.aasra.info/",
	},
	FallbackRegion: {
		Region: FallbackRegion,
		Name:   "Find A Helpline",
		Chat:   "https://findahelpline.com/",
	},
}

// StaticDirectory serves the built-in table. Unknown regions fall back to
// the GLOBAL entry.
type StaticDirectory struct{}

func NewStaticDirectory() Directory {
	return &StaticDirectory{}
}

func (d *StaticDirectory) Lookup(_ context.Context, region string) Resource {
	if region == "" {
		region = FallbackRegion
	}
	if r, ok := builtinResources[region]; ok {
		return r
	}
	return builtinResources[FallbackRegion]
}

// HTTPDirectory queries an external resource service and falls back to the
// static table on any failure or timeout.
type HTTPDirectory struct {
	baseURL  string
	apiKey   string
	timeout  time.Duration
	fallback Directory
	client   *http.Client
}

func NewHTTPDirectory(baseURL, apiKey string, timeout time.Duration) Directory {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPDirectory{
		baseURL:  baseURL,
		apiKey:   apiKey,
		timeout:  timeout,
		fallback: NewStaticDirectory(),
		client:   &http.Client{Timeout: timeout},
	}
}

func (d *HTTPDirectory) Lookup(ctx context.Context, region string) Resource {
	if region == "" {
		region = FallbackRegion
	}

	lctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resource, err := d.fetch(lctx, region)
	if err != nil {
		return d.fallback.Lookup(ctx, region)
	}
	return *resource
}

func (d *HTTPDirectory) fetch(ctx context.Context, region string) (*Resource, error) {
	reqBody, err := json.Marshal(map[string]string{"region": region})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/resources", d.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resource lookup error: %s", string(bodyBytes))
	}

	var resource Resource
	if err := json.Unmarshal(bodyBytes, &resource); err != nil {
		return nil, err
	}
	if resource.Name == "" {
		return nil, fmt.Errorf("resource lookup returned empty entry")
	}
	return &resource, nil
}
