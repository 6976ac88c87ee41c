package domain

// ParticipantFormContext holds intermediate state of the admin flow
// that registers a new contest participant step by step.
type ParticipantFormContext struct {
	ChatID      int64
	FullName    string
	Grade       string
	Description string
	ImageURL    string
	ImageKey    string
	VideoURL    string
}

// ToMap serializes the context for session storage
func (c *ParticipantFormContext) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"chat_id":     c.ChatID,
		"full_name":   c.FullName,
		"grade":       c.Grade,
		"description": c.Description,
		"image_url":   c.ImageURL,
		"image_key":   c.ImageKey,
		"video_url":   c.VideoURL,
	}
}

// FromMap restores the context from session storage.
// Numbers come back as float64 after the JSON round trip.
func (c *ParticipantFormContext) FromMap(data map[string]interface{}) error {
	chatID, ok := toInt64(data["chat_id"])
	if !ok {
		return ErrInvalidContextData
	}
	c.ChatID = chatID

	c.FullName = toString(data["full_name"])
	c.Grade = toString(data["grade"])
	c.Description = toString(data["description"])
	c.ImageURL = toString(data["image_url"])
	c.ImageKey = toString(data["image_key"])
	c.VideoURL = toString(data["video_url"])

	return nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	}
	return 0, false
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}
