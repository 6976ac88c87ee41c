package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback actions carried in inline button data
const (
	ActionVote   = "vote"
	ActionRevoke = "revoke"
	ActionDelete = "delete"
	ActionCheck  = "check"
)

// encodeCallback packs an action and participant ID into callback data,
// e.g. "vote_42"
func encodeCallback(action string, id int64) string {
	return fmt.Sprintf("%s_%d", action, id)
}

// encodeCheckCallback packs a membership re-check that replays the
// original action once the user has joined, e.g. "check_vote_42"
func encodeCheckCallback(action string, id int64) string {
	return fmt.Sprintf("%s_%s_%d", ActionCheck, action, id)
}

// decodeCallback splits callback data into action, nested action (for
// membership checks) and participant ID
func decodeCallback(data string) (action, nested string, id int64, err error) {
	parts := strings.Split(data, "_")

	switch len(parts) {
	case 2:
		if parts[0] == ActionCheck {
			return "", "", 0, fmt.Errorf("malformed callback data: %s", data)
		}
		action = parts[0]
	case 3:
		if parts[0] != ActionCheck {
			return "", "", 0, fmt.Errorf("malformed callback data: %s", data)
		}
		action = parts[0]
		nested = parts[1]
	default:
		return "", "", 0, fmt.Errorf("malformed callback data: %s", data)
	}

	id, err = strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("malformed callback ID in %s: %w", data, err)
	}

	return action, nested, id, nil
}
