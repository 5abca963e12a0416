package mailer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendClient sends mail through the Resend HTTP API.
type ResendClient struct {
	APIKey   string
	Endpoint string
	HTTP     *http.Client
}

func NewResendClient(apiKey string) *ResendClient {
	return &ResendClient{
		APIKey:   apiKey,
		Endpoint: resendEndpoint,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64
}

type resendPayload struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	ReplyTo     string             `json:"reply_to,omitempty"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// Send posts the message to Resend. Non-2xx responses are returned as errors
// so the retry layer can decide what to do.
func (r *ResendClient) Send(msg Message) error {
	payload := resendPayload{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	if len(msg.Attachment) > 0 {
		payload.Attachments = []resendAttachment{{
			Filename: msg.AttachmentName,
			Content:  base64.StdEncoding.EncodeToString(msg.Attachment),
		}}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode mail payload: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

// SendWithRetry attempts delivery with a small backoff. Rendering is pure, so
// a duplicate email on a spurious failure is the worst possible outcome; the
// quote itself is never touched from here.
func SendWithRetry(t Transport, msg Message, attempts int) error {
	if attempts <= 0 {
		attempts = 3
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(time.Duration(i) * 500 * time.Millisecond)
		}
		if err = t.Send(msg); err == nil {
			return nil
		}
		log.Printf("mailer: envoi échoué (tentative %d/%d): %v", i+1, attempts, err)
	}
	return fmt.Errorf("mail non envoyé après %d tentatives: %w", attempts, err)
}
