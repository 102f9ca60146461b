package relay

import "context"

// MediaType enumerates the message kinds the relay can forward. Detection
// order is significant: the first matching kind wins even when a payload
// technically carries several.
type MediaType string

const (
	MediaText     MediaType = "text"
	MediaPhoto    MediaType = "photo"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaVoice    MediaType = "voice"
	MediaDocument MediaType = "document"
)

// InboundMessage is the canonical form of one webhook update. It lives for
// a single invocation and is never persisted.
type InboundMessage struct {
	SenderID       string    `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	ChatID         string    `json:"chat_id"`
	ChatName       string    `json:"chat_name"`
	ChatType       string    `json:"chat_type"`
	MediaType      MediaType `json:"media_type"`
	Text           string    `json:"text"`
	FileID         string    `json:"file_id,omitempty"`
}

type Verdict string

const (
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
	VerdictSkip   Verdict = "skip"
)

// Decision is the outcome of the admission filter chain. Reject and Skip
// are reported identically to the platform; the reason only feeds logs.
type Decision struct {
	Verdict Verdict
	Reason  string
}

func Accept() Decision              { return Decision{Verdict: VerdictAccept} }
func Reject(reason string) Decision { return Decision{Verdict: VerdictReject, Reason: reason} }
func Skip(reason string) Decision   { return Decision{Verdict: VerdictSkip, Reason: reason} }

func (d Decision) Forwardable() bool { return d.Verdict == VerdictAccept }

// ForwardResult is what the forwarder reports back to the webhook handler.
type ForwardResult struct {
	Success   bool   `json:"success"`
	MessageID int64  `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// IRelayUsecase drives one inbound message through admission and, when
// accepted, through the single outbound forward call.
type IRelayUsecase interface {
	Admit(ctx context.Context, msg InboundMessage) Decision
	Relay(ctx context.Context, msg InboundMessage) (Decision, ForwardResult)
}

// IForwarder issues exactly one platform send call for an admitted message.
type IForwarder interface {
	Forward(ctx context.Context, targetChatID string, msg InboundMessage) ForwardResult
}
