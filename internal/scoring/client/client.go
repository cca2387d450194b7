// Package client provides the HTTP clients for the external resume
// scoring and document parsing collaborators.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hireflow_backend/platform/logger"
)

// ScoreClient calls the resume scoring API.
type ScoreClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// NewScoreClient creates a scoring API client.
func NewScoreClient(baseURL, apiKey string, log *logger.Logger) *ScoreClient {
	return &ScoreClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		log:        log,
	}
}

type scoreRequest struct {
	ResumeText     string `json:"resumeText"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
}

type scoreResponse struct {
	Score           int    `json:"score"`
	ProfileStrength string `json:"profileStrength"`
}

// Score submits resume text against a job and returns a 0-100 score with
// a profile strength classification.
func (c *ScoreClient) Score(ctx context.Context, resumeText, jobTitle, jobDescription string) (int, string, error) {
	body, err := json.Marshal(scoreRequest{
		ResumeText:     resumeText,
		JobTitle:       jobTitle,
		JobDescription: jobDescription,
	})
	if err != nil {
		return 0, "", fmt.Errorf("encode score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/score", bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("scoring request failed", "error", err)
		return 0, "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return 0, "", fmt.Errorf("unauthorized: invalid API key")
	case http.StatusUnprocessableEntity:
		return 0, "", fmt.Errorf("scoring refused the document")
	default:
		c.log.Error("scoring upstream error", "status", resp.StatusCode)
		return 0, "", fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, "", fmt.Errorf("decode response: %w", err)
	}
	if out.Score < 0 || out.Score > 100 {
		return 0, "", fmt.Errorf("score %d out of range", out.Score)
	}
	return out.Score, out.ProfileStrength, nil
}

// ParseClient calls the document parsing API, which turns a stored resume
// into plain text.
type ParseClient struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// NewParseClient creates a document parser client.
func NewParseClient(baseURL string, log *logger.Logger) *ParseClient {
	return &ParseClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		log:        log,
	}
}

type parseRequest struct {
	FileURL string `json:"fileUrl"`
}

type parseResponse struct {
	Text string `json:"text"`
}

// Parse fetches the document behind the presigned URL and returns its text.
func (c *ParseClient) Parse(ctx context.Context, fileURL string) (string, error) {
	body, err := json.Marshal(parseRequest{FileURL: fileURL})
	if err != nil {
		return "", fmt.Errorf("encode parse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/parse", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("parser request failed", "error", err)
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("parser upstream error", "status", resp.StatusCode)
		return "", fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var out parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Text, nil
}
