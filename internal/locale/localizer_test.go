package locale

import (
	"strings"
	"testing"
)

func TestValidateTranslations(t *testing.T) {
	keys, err := ValidateTranslations()
	if err != nil {
		t.Fatalf("Translation files diverged: %v", err)
	}
	if len(keys) == 0 {
		t.Fatalf("Expected at least one message key")
	}
}

func TestAllConstantsHaveTranslations(t *testing.T) {
	localizer, err := NewLocalizer(NewLocale(Uz))
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}

	// A missing key makes MustLocalize panic
	for _, key := range []string{
		HelpText, HelpTextAdmin,
		ErrorNotAdmin, ErrorUnknownCommand, ErrorUnsupportedMessage, ErrorGeneric, UnknownCallback,
		ChooseParticipantPrompt, NoParticipants, VoteAlreadyVoted, VoteNotFound, ParticipantNotFound,
		JoinChannelButton, CheckMembershipButton, NoChannelConfigured,
		LeaderboardTitle, VoteButton, RevokeButton, WatchVideoButton,
		FormAskName, FormAskGrade, FormAskDescription, FormAskImage, FormAskVideo,
		FormTextRequired, FormPhotoRequired, FormInvalidURL, FormUploadFailed, FormPhotoOutsideFlow,
		ParticipantCreateFailed, DeleteChoosePrompt, ParticipantDeleteFailed,
		ChannelAskHandle, ChannelAskName, ChannelCreateFailed,
		ResetConfirmPrompt, ResetDone, ResetCancelled, ResetFailed,
		PostDone, PostFailed,
	} {
		if got := localizer.MustLocalize(key); got == "" {
			t.Errorf("Expected non-empty translation for %s", key)
		}
	}
}

func TestTemplateFieldsSubstituted(t *testing.T) {
	for _, lang := range []string{Uz, En} {
		localizer, err := NewLocalizer(NewLocale(lang))
		if err != nil {
			t.Fatalf("Failed to create %s localizer: %v", lang, err)
		}

		got := localizer.MustLocalizeWithTemplate(VoteAccepted, "Aziza Karimova")
		if !strings.Contains(got, "Aziza Karimova") {
			t.Errorf("Expected participant name in %s VoteAccepted, got %q", lang, got)
		}

		got = localizer.MustLocalizeWithTemplate(StartWelcome, "Aziza")
		if !strings.Contains(got, "Aziza") {
			t.Errorf("Expected user name in %s StartWelcome, got %q", lang, got)
		}

		got = localizer.MustLocalizeWithTemplate(ParticipantCard, "Aziza Karimova", "9-A", "Plays the violin", "3")
		for _, field := range []string{"Aziza Karimova", "9-A", "Plays the violin", "3"} {
			if !strings.Contains(got, field) {
				t.Errorf("Expected %q in %s ParticipantCard, got %q", field, lang, got)
			}
		}

		got = localizer.MustLocalizeWithTemplate(LeaderboardRow, "1", "Aziza Karimova", "3")
		if !strings.Contains(got, "Aziza Karimova") {
			t.Errorf("Expected participant name in %s LeaderboardRow, got %q", lang, got)
		}
	}
}

func TestLanguagesDiffer(t *testing.T) {
	uz, err := NewLocalizer(NewLocale(Uz))
	if err != nil {
		t.Fatalf("Failed to create uz localizer: %v", err)
	}
	en, err := NewLocalizer(NewLocale(En))
	if err != nil {
		t.Fatalf("Failed to create en localizer: %v", err)
	}

	if uz.MustLocalize(HelpText) == en.MustLocalize(HelpText) {
		t.Errorf("Expected uz and en help texts to differ")
	}
}
