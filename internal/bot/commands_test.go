package bot

import (
	"testing"

	"github.com/ad/telegram-contest-bot/internal/domain"
)

func TestMainKeyboardRows(t *testing.T) {
	user := mainKeyboard(false)
	if len(user.Keyboard) != 3 {
		t.Errorf("Expected 3 rows for a regular user, got %d", len(user.Keyboard))
	}

	admin := mainKeyboard(true)
	if len(admin.Keyboard) != 6 {
		t.Errorf("Expected 6 rows for an admin, got %d", len(admin.Keyboard))
	}

	// The admin keyboard starts with the same rows the user sees
	for i, row := range user.Keyboard {
		for j, button := range row {
			if admin.Keyboard[i][j].Text != button.Text {
				t.Errorf("Expected shared row %d to match, got %q vs %q", i, admin.Keyboard[i][j].Text, button.Text)
			}
		}
	}
}

func TestResetConfirmKeyboardIsOneTime(t *testing.T) {
	keyboard := resetConfirmKeyboard()
	if !keyboard.OneTimeKeyboard {
		t.Errorf("Expected the confirmation keyboard to be one-time")
	}
	if len(keyboard.Keyboard) != 2 {
		t.Errorf("Expected confirm and cancel rows, got %d", len(keyboard.Keyboard))
	}
}

func TestParticipantListKeyboard(t *testing.T) {
	participants := []*domain.Participant{
		{ID: 1, FullName: "Aziza Karimova"},
		{ID: 2, FullName: "Bobur Toshev"},
	}

	keyboard := participantListKeyboard(participants, ActionVote)
	if len(keyboard.InlineKeyboard) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(keyboard.InlineKeyboard))
	}
	if keyboard.InlineKeyboard[0][0].Text != "Aziza Karimova" {
		t.Errorf("Expected participant name on button, got %q", keyboard.InlineKeyboard[0][0].Text)
	}
	if keyboard.InlineKeyboard[1][0].CallbackData != "vote_2" {
		t.Errorf("Expected callback vote_2, got %q", keyboard.InlineKeyboard[1][0].CallbackData)
	}
}

func TestParticipantCardKeyboardVideoButton(t *testing.T) {
	localizer := testLocalizer(t)

	plain := participantCardKeyboard(&domain.Participant{ID: 1}, localizer)
	if len(plain.InlineKeyboard) != 1 {
		t.Errorf("Expected only the vote row without a video, got %d rows", len(plain.InlineKeyboard))
	}

	withVideo := participantCardKeyboard(&domain.Participant{ID: 1, VideoURL: "https://youtu.be/abc"}, localizer)
	if len(withVideo.InlineKeyboard) != 2 {
		t.Fatalf("Expected a video row, got %d rows", len(withVideo.InlineKeyboard))
	}
	if withVideo.InlineKeyboard[1][0].URL != "https://youtu.be/abc" {
		t.Errorf("Expected video URL on button, got %q", withVideo.InlineKeyboard[1][0].URL)
	}

	badVideo := participantCardKeyboard(&domain.Participant{ID: 1, VideoURL: "not a url"}, localizer)
	if len(badVideo.InlineKeyboard) != 1 {
		t.Errorf("Expected no button for an invalid video URL, got %d rows", len(badVideo.InlineKeyboard))
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://youtu.be/abc", true},
		{"http://example.com/video", true},
		{"ftp://example.com/video", false},
		{"example.com/video", false},
		{"", false},
		{"https://", false},
	}

	for _, tt := range tests {
		if got := isValidURL(tt.input); got != tt.want {
			t.Errorf("isValidURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
