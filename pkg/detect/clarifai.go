package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smartbrain/smartbrain-api/pkg/config"
)

// FaceDetector runs an image URL through a face-detection provider and
// returns the provider's raw JSON response
type FaceDetector interface {
	DetectFaces(ctx context.Context, imageURL string) (json.RawMessage, error)
}

// ClarifaiClient implements FaceDetector against the Clarifai API
type ClarifaiClient struct {
	httpClient *http.Client
	config     config.ClarifaiConfig
}

// NewClarifaiClient creates a new ClarifaiClient. A nil httpClient gets a
// default with a request timeout.
func NewClarifaiClient(cfg config.ClarifaiConfig, httpClient *http.Client) *ClarifaiClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ClarifaiClient{
		httpClient: httpClient,
		config:     cfg,
	}
}

type clarifaiRequest struct {
	UserAppID clarifaiUserAppID `json:"user_app_id"`
	Inputs    []clarifaiInput   `json:"inputs"`
}

type clarifaiUserAppID struct {
	UserID string `json:"user_id"`
	AppID  string `json:"app_id"`
}

type clarifaiInput struct {
	Data clarifaiInputData `json:"data"`
}

type clarifaiInputData struct {
	Image clarifaiImage `json:"image"`
}

type clarifaiImage struct {
	URL string `json:"url"`
}

// DetectFaces posts the image URL to the configured face-detection model and
// returns the provider response verbatim
func (c *ClarifaiClient) DetectFaces(ctx context.Context, imageURL string) (json.RawMessage, error) {
	payload := clarifaiRequest{
		UserAppID: clarifaiUserAppID{
			UserID: c.config.UserID,
			AppID:  c.config.AppID,
		},
		Inputs: []clarifaiInput{
			{Data: clarifaiInputData{Image: clarifaiImage{URL: imageURL}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/models/%s/versions/%s/outputs",
		c.config.BaseURL, c.config.ModelID, c.config.ModelVersionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Key "+c.config.PAT)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face detection request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face detection provider returned status %d", resp.StatusCode)
	}

	return json.RawMessage(respBody), nil
}
