package telegram

import (
	"strconv"

	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	domainExclusion "github.com/AzielCF/tg-relay/domains/exclusion"
	domainRelay "github.com/AzielCF/tg-relay/domains/relay"
)

// ConnectionUpdate extracts the control event from an update, when present.
// Control events bypass the admission chain entirely.
func ConnectionUpdate(u *Update) (domainConnection.StatusUpdate, bool) {
	if u == nil || u.BusinessConnection == nil {
		return domainConnection.StatusUpdate{}, false
	}
	conn := u.BusinessConnection
	return domainConnection.StatusUpdate{
		ConnectionID: conn.ID,
		UserChatID:   strconv.FormatInt(conn.UserChatID, 10),
		UserName:     displayName(conn.User),
		IsEnabled:    conn.IsEnabled,
	}, true
}

// NormalizeMessage converts a raw update into the canonical inbound record.
// The second return is false for anything that is not a forwardable
// message: control events, empty updates, and bodies with neither media
// nor text.
func NormalizeMessage(u *Update) (domainRelay.InboundMessage, bool) {
	if u == nil || u.BusinessConnection != nil {
		return domainRelay.InboundMessage{}, false
	}

	body := u.Message
	if body == nil {
		body = u.BusinessMessage
	}
	if body == nil {
		return domainRelay.InboundMessage{}, false
	}

	msg := domainRelay.InboundMessage{
		SenderID:       "unknown",
		SenderUsername: displayName(body.From),
	}
	if body.From != nil {
		msg.SenderID = strconv.FormatInt(body.From.ID, 10)
	}
	if body.Chat != nil {
		msg.ChatID = strconv.FormatInt(body.Chat.ID, 10)
		msg.ChatName = ChatName(body.Chat)
		msg.ChatType = ChatType(body.Chat)
	}

	// Detection order is significant and mutually exclusive; only the
	// first matching kind is honored.
	switch {
	case len(body.Photo) > 0:
		msg.MediaType = domainRelay.MediaPhoto
		msg.FileID = body.Photo[len(body.Photo)-1].FileID // highest resolution
		msg.Text = body.Caption
	case body.Video != nil:
		msg.MediaType = domainRelay.MediaVideo
		msg.FileID = body.Video.FileID
		msg.Text = body.Caption
	case body.Audio != nil:
		msg.MediaType = domainRelay.MediaAudio
		msg.FileID = body.Audio.FileID
		msg.Text = body.Caption
	case body.Voice != nil:
		msg.MediaType = domainRelay.MediaVoice
		msg.FileID = body.Voice.FileID
		msg.Text = body.Caption
	case body.Document != nil:
		msg.MediaType = domainRelay.MediaDocument
		msg.FileID = body.Document.FileID
		msg.Text = body.Caption
	case body.Text != "":
		msg.MediaType = domainRelay.MediaText
		msg.Text = body.Text
	default:
		// Nothing to forward.
		return domainRelay.InboundMessage{}, false
	}

	return msg, true
}

// displayName falls back username -> first name -> "unknown".
func displayName(u *User) string {
	if u == nil {
		return "unknown"
	}
	if u.Username != "" {
		return u.Username
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return "unknown"
}

// ChatName derives a human label for a chat: title, then @username, then
// the contact's full name.
func ChatName(chat *Chat) string {
	if chat == nil {
		return "Unknown Chat"
	}
	if chat.Title != "" {
		return chat.Title
	}
	if chat.Username != "" {
		return "@" + chat.Username
	}
	if chat.FirstName != "" {
		name := chat.FirstName
		if chat.LastName != "" {
			name += " " + chat.LastName
		}
		return name
	}
	return "Unknown Chat"
}

// ChatType collapses the platform chat types to the exclusion buckets.
func ChatType(chat *Chat) string {
	if chat == nil {
		return domainExclusion.ChatTypeUnknown
	}
	switch chat.Type {
	case "private":
		return domainExclusion.ChatTypeIndividual
	case "group", "supergroup":
		return domainExclusion.ChatTypeGroup
	case "channel":
		return domainExclusion.ChatTypeChannel
	}
	return domainExclusion.ChatTypeUnknown
}
