package bot

import (
	"net/url"
	"strconv"

	"github.com/go-telegram/bot/models"

	"github.com/ad/telegram-contest-bot/internal/domain"
	"github.com/ad/telegram-contest-bot/internal/locale"
)

// Command labels matched against incoming messages, lowercased.
// The reply keyboard shows the same words, so they stay fixed
// regardless of the configured locale.
const (
	CmdStart             = "/start"
	CmdHelp              = "yordam"
	CmdVote              = "ovoz berish"
	CmdRevoke            = "qaytarish"
	CmdLeaderboard       = "reyting"
	CmdListParticipants  = "barcha qatnashuvchilar"
	CmdAddParticipant    = "kiritish"
	CmdRemoveParticipant = "chetlatish"
	CmdAddChannel        = "kanal qo'shish"
	CmdPost              = "post"
	CmdReset             = "supur"

	ConfirmResetYes = "ha, barchasini o'chirish"
	ConfirmResetNo  = "bekor qilish"
)

// mainKeyboard builds the persistent reply keyboard
func mainKeyboard(isAdmin bool) *models.ReplyKeyboardMarkup {
	keyboard := [][]models.KeyboardButton{
		{{Text: "Ovoz berish"}, {Text: "Qaytarish"}},
		{{Text: "Reyting"}, {Text: "Barcha qatnashuvchilar"}},
		{{Text: "Yordam"}},
	}

	if isAdmin {
		keyboard = append(keyboard,
			[]models.KeyboardButton{{Text: "Kiritish"}, {Text: "Chetlatish"}},
			[]models.KeyboardButton{{Text: "Kanal qo'shish"}, {Text: "Post"}},
			[]models.KeyboardButton{{Text: "Supur"}},
		)
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard:       keyboard,
		ResizeKeyboard: true,
	}
}

// resetConfirmKeyboard builds the one-time confirmation keyboard for the wipe command
func resetConfirmKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "Ha, barchasini o'chirish"}},
			{{Text: "Bekor qilish"}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// participantListKeyboard builds one button per participant, all
// carrying the same action
func participantListKeyboard(participants []*domain.Participant, action string) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: p.FullName, CallbackData: encodeCallback(action, p.ID)},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// participantCardKeyboard builds the vote/revoke buttons under a
// participant card, plus a video link when the URL qualifies as a button
func participantCardKeyboard(p *domain.Participant, localizer locale.Localizer) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{
			{Text: localizer.MustLocalize(locale.VoteButton), CallbackData: encodeCallback(ActionVote, p.ID)},
			{Text: localizer.MustLocalize(locale.RevokeButton), CallbackData: encodeCallback(ActionRevoke, p.ID)},
		},
	}
	if isValidURL(p.VideoURL) {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: localizer.MustLocalize(locale.WatchVideoButton), URL: p.VideoURL},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// isValidURL reports whether s is an absolute http(s) URL
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// formatVotes renders a vote count for message templates
func formatVotes(count int) string {
	return strconv.Itoa(count)
}
