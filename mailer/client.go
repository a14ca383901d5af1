package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	sendTrackingCodePath = "/send-tracking-code"
	sendMFAEmailPath     = "/send-mfa-email"
)

func NewClient(config *Config) (Client, error) {
	return &client{
		baseUrl: config.Address,
		http: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

type client struct {
	baseUrl string
	http    *http.Client
}

var _ Client = &client{}

type sendTrackingCodeRequest struct {
	Email        string `json:"email"`
	TrackingCode string `json:"trackingCode"`
	PatientName  string `json:"patientName"`
}

type sendMFAEmailRequest struct {
	Email   string `json:"email"`
	MFACode string `json:"mfaCode"`
}

type sendResponse struct {
	Success bool `json:"success"`
}

func (c *client) SendTrackingCode(ctx context.Context, email, trackingCode, patientName string) error {
	return c.post(ctx, sendTrackingCodePath, sendTrackingCodeRequest{
		Email:        email,
		TrackingCode: trackingCode,
		PatientName:  patientName,
	})
}

func (c *client) SendMFAEmail(ctx context.Context, email, mfaCode string) error {
	return c.post(ctx, sendMFAEmailPath, sendMFAEmailRequest{
		Email:   email,
		MFACode: mfaCode,
	})
}

func (c *client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling mailer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating mailer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error sending mailer request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected mailer response status %v", res.StatusCode)
	}

	response := sendResponse{}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return fmt.Errorf("error decoding mailer response: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("mailer reported delivery failure")
	}

	return nil
}
