package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// MaxResumeChars caps how much pasted resume text is transmitted.
const MaxResumeChars = 15000

// ReviewFallback is returned to the visitor when the completion call
// fails; resume review never surfaces an error.
const ReviewFallback = "Error analyzing resume. Please try again with a different file format (PDF/Image/Text)."

// ReviewInput is either pasted text or an uploaded file. A non-empty Data
// marks the binary form: base64 bytes described by MIMEType.
type ReviewInput struct {
	Text     string `json:"text,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// IsBinary reports whether the input carries an uploaded payload.
func (in ReviewInput) IsBinary() bool {
	return in.Data != ""
}

// Reviewer issues stateless one-shot resume reviews. No session, no
// retries, no partial results.
type Reviewer struct {
	svc *Service
}

// NewReviewer builds a reviewer over the shared AI service.
func NewReviewer(svc *Service) *Reviewer {
	return &Reviewer{svc: svc}
}

// Review classifies the input, issues a single multimodal completion and
// returns the model's text, or the fallback apology when the call fails.
func (r *Reviewer) Review(ctx context.Context, input ReviewInput) string {
	messages := []*schema.Message{
		schema.SystemMessage(r.svc.prompts.Reviewer()),
		buildReviewMessage(input),
	}

	response, err := r.svc.chatModel.Generate(ctx, messages)
	if err != nil {
		log.Printf("[ai] resume review failed: %v", err)
		return ReviewFallback
	}
	return response.Content
}

// buildReviewMessage assembles the single user turn: the classified
// content part plus the fixed review request.
func buildReviewMessage(input ReviewInput) *schema.Message {
	var content schema.ChatMessagePart
	if input.IsBinary() {
		uri := fmt.Sprintf("data:%s;base64,%s", input.MIMEType, input.Data)
		if strings.HasPrefix(input.MIMEType, "image/") {
			content = schema.ChatMessagePart{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL:      uri,
					MIMEType: input.MIMEType,
				},
			}
		} else {
			content = schema.ChatMessagePart{
				Type: schema.ChatMessagePartTypeFileURL,
				FileURL: &schema.ChatMessageFileURL{
					URL:      uri,
					MIMEType: input.MIMEType,
					Name:     "resume",
				},
			}
		}
	} else {
		content = schema.ChatMessagePart{
			Type: schema.ChatMessagePartTypeText,
			Text: truncate(input.Text, MaxResumeChars),
		}
	}

	return &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			content,
			{Type: schema.ChatMessagePartTypeText, Text: reviewRequest},
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
