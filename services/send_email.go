package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nkarpov/portfolio-site-backend/config"
	"github.com/nkarpov/portfolio-site-backend/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// MailConfigured reports whether Resend delivery credentials are
// present. Without them the contact endpoint logs and reports soft
// success instead of failing.
func MailConfigured(cfg map[string]string) bool {
	return config.GetString(cfg, "RESEND_API_KEY", "") != "" &&
		config.GetString(cfg, "RESEND_FROM_EMAIL", "") != ""
}

// SendContactNotification mails an incoming contact form submission to
// the site owner via the Resend API.
//
// Requires environment variables:
//   - RESEND_API_KEY: Resend API key
//   - RESEND_FROM_EMAIL: sender address (e.g. "Site <site@example.com>")
//   - CONTACT_EMAIL: recipient; falls back to RESEND_FROM_EMAIL
func SendContactNotification(cfg map[string]string, req models.ContactRequest) error {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if fromEmail == "" {
		return fmt.Errorf("RESEND_FROM_EMAIL environment variable is required")
	}

	recipient := config.GetString(cfg, "CONTACT_EMAIL", fromEmail)

	payload := ResendEmailRequest{
		From:    fromEmail,
		To:      []string{recipient},
		Subject: fmt.Sprintf("Новая заявка: %s", req.Subject),
		Html:    contactEmailBody(req),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	httpReq, err := http.NewRequest("POST", resendEndpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent contact notification via Resend")
	}

	return nil
}

func contactEmailBody(req models.ContactRequest) string {
	return fmt.Sprintf(
		`<h2>Новая заявка с сайта</h2>
<p><b>Имя:</b> %s</p>
<p><b>Email:</b> %s</p>
<p><b>Тип проекта:</b> %s</p>
<p><b>Тема:</b> %s</p>
<p>%s</p>`,
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.ProjectType),
		html.EscapeString(req.Subject),
		html.EscapeString(req.Message),
	)
}
