// Package tms talks to the Phrase TMS REST API: uploading XLIFF files as
// translation jobs, attaching review comments, and downloading completed
// files back.
package tms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api.phrase.com/v2"

// PhraseClient is a minimal Phrase TMS API client.
type PhraseClient struct {
	token     string
	projectID string
	baseURL   string
	client    *http.Client
}

// NewPhraseClient reads PHRASE_API_TOKEN and PHRASE_PROJECT_ID from the
// environment. Both are required.
func NewPhraseClient() (*PhraseClient, error) {
	token := os.Getenv("PHRASE_API_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("PHRASE_API_TOKEN environment variable not set")
	}
	projectID := os.Getenv("PHRASE_PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("PHRASE_PROJECT_ID environment variable not set")
	}
	return &PhraseClient{
		token:     token,
		projectID: projectID,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Job is the subset of the Phrase job resource the pipeline uses.
type Job struct {
	UID        string `json:"uid"`
	Filename   string `json:"filename"`
	TargetLang string `json:"targetLang"`
	Status     string `json:"status"`
}

// UploadXLIFF creates a translation job from an XLIFF file.
func (c *PhraseClient) UploadXLIFF(ctx context.Context, path, targetLang string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", path)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.WriteField("targetLangs", targetLang); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/projects/%s/jobs", c.baseURL, c.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading to Phrase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Phrase upload failed with status %d: %s", resp.StatusCode, string(b))
	}

	var created struct {
		Jobs []Job `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("parsing Phrase response: %w", err)
	}
	if len(created.Jobs) == 0 {
		return nil, fmt.Errorf("Phrase created no jobs")
	}
	return &created.Jobs[0], nil
}

// AddJobComment attaches a review note to a job, used to surface LQA
// findings to human reviewers.
func (c *PhraseClient) AddJobComment(ctx context.Context, jobUID, comment string) error {
	payload, err := json.Marshal(map[string]string{"text": comment})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/projects/%s/jobs/%s/comments", c.baseURL, c.projectID, jobUID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Phrase comment failed with status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

// DownloadXLIFF fetches the (post-review) target file for a job.
func (c *PhraseClient) DownloadXLIFF(ctx context.Context, jobUID string) ([]byte, error) {
	url := fmt.Sprintf("%s/projects/%s/jobs/%s/targetFile", c.baseURL, c.projectID, jobUID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading from Phrase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Phrase download failed with status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}
