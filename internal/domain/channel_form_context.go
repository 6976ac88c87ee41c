package domain

import "strings"

// ChannelFormContext holds intermediate state of the admin flow
// that registers a new gate channel.
type ChannelFormContext struct {
	ChatID int64
	Handle string
	Name   string
}

// ToMap serializes the context for session storage
func (c *ChannelFormContext) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"chat_id": c.ChatID,
		"handle":  c.Handle,
		"name":    c.Name,
	}
}

// FromMap restores the context from session storage
func (c *ChannelFormContext) FromMap(data map[string]interface{}) error {
	chatID, ok := toInt64(data["chat_id"])
	if !ok {
		return ErrInvalidContextData
	}
	c.ChatID = chatID

	c.Handle = toString(data["handle"])
	c.Name = toString(data["name"])

	return nil
}

// NormalizeHandle brings a user-entered channel reference to the form
// the Bot API accepts as a chat identifier. Usernames get an @ prefix,
// numeric chat IDs (starting with -) are kept as typed.
func NormalizeHandle(raw string) string {
	handle := strings.TrimSpace(raw)
	handle = strings.TrimPrefix(handle, "https://t.me/")
	handle = strings.TrimPrefix(handle, "t.me/")
	if handle == "" {
		return handle
	}
	if strings.HasPrefix(handle, "@") || strings.HasPrefix(handle, "-") {
		return handle
	}
	return "@" + handle
}
