package board

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"time"
)

// WebhookEventType represents a Trello webhook action type.
type WebhookEventType string

// Webhook event types emitted by Trello for board activity.
const (
	WebhookEventCardCreated  WebhookEventType = "createCard"
	WebhookEventCardUpdated  WebhookEventType = "updateCard"
	WebhookEventCardDeleted  WebhookEventType = "deleteCard"
	WebhookEventCommentAdded WebhookEventType = "commentCard"
	WebhookEventListCreated  WebhookEventType = "createList"
	WebhookEventListUpdated  WebhookEventType = "updateList"
)

// WebhookSignatureHeader carries the Trello webhook signature.
const WebhookSignatureHeader = "X-Trello-Webhook"

// WebhookPayload represents a Trello webhook callback body.
type WebhookPayload struct {
	Action WebhookAction `json:"action"`
	Model  WebhookModel  `json:"model"`
}

// WebhookAction describes the activity that triggered the callback.
type WebhookAction struct {
	ID            string           `json:"id"`
	Type          WebhookEventType `json:"type"`
	Date          time.Time        `json:"date"`
	MemberCreator WebhookMember    `json:"memberCreator"`
	Data          WebhookData      `json:"data"`
}

// WebhookMember identifies the member behind the action.
type WebhookMember struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// WebhookData carries the entities affected by the action. Fields are
// populated depending on the action type.
type WebhookData struct {
	Text       string      `json:"text,omitempty"`
	Card       *WebhookRef `json:"card,omitempty"`
	List       *WebhookRef `json:"list,omitempty"`
	ListBefore *WebhookRef `json:"listBefore,omitempty"`
	ListAfter  *WebhookRef `json:"listAfter,omitempty"`
	Board      *WebhookRef `json:"board,omitempty"`
}

// WebhookRef is a minimal reference to a board entity.
type WebhookRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WebhookModel identifies the model the webhook is registered on.
type WebhookModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsMove reports whether the action moved a card between lists.
func (a *WebhookAction) IsMove() bool {
	return a.Type == WebhookEventCardUpdated &&
		a.Data.ListBefore != nil && a.Data.ListAfter != nil
}

// ValidateWebhookSignature validates a Trello webhook signature.
// Trello signs the request body concatenated with the callback URL
// using HMAC-SHA1 and sends the base64 digest in X-Trello-Webhook.
func ValidateWebhookSignature(body []byte, callbackURL, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	mac.Write([]byte(callbackURL))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseWebhookPayload parses a Trello webhook payload from JSON bytes.
func ParseWebhookPayload(body []byte) (*WebhookPayload, error) {
	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrWebhookInvalidPayload
	}
	return &payload, nil
}
