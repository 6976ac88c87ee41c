package locale

// Message key constants for localization.
// All user-facing messages go through these constants.

const (
	// Start and help
	StartWelcome      = "StartWelcome"
	StartWelcomeAdmin = "StartWelcomeAdmin"
	HelpText          = "HelpText"
	HelpTextAdmin     = "HelpTextAdmin"

	// Errors
	ErrorNotAdmin           = "ErrorNotAdmin"
	ErrorUnknownCommand     = "ErrorUnknownCommand"
	ErrorUnsupportedMessage = "ErrorUnsupportedMessage"
	ErrorGeneric            = "ErrorGeneric"
	UnknownCallback         = "UnknownCallback"

	// Voting
	ChooseParticipantPrompt = "ChooseParticipantPrompt"
	NoParticipants          = "NoParticipants"
	VoteAccepted            = "VoteAccepted"
	VoteAlreadyVoted        = "VoteAlreadyVoted"
	VoteRevoked             = "VoteRevoked"
	VoteNotFound            = "VoteNotFound"
	ParticipantNotFound     = "ParticipantNotFound"

	// Membership gate
	JoinChannelPrompt     = "JoinChannelPrompt"
	JoinChannelButton     = "JoinChannelButton"
	CheckMembershipButton = "CheckMembershipButton"
	MembershipAlert       = "MembershipAlert"
	NoChannelConfigured   = "NoChannelConfigured"

	// Leaderboard and participant cards
	LeaderboardTitle = "LeaderboardTitle"
	LeaderboardRow   = "LeaderboardRow"
	ParticipantCard  = "ParticipantCard"
	VideoLinkLine    = "VideoLinkLine"
	VoteButton       = "VoteButton"
	RevokeButton     = "RevokeButton"
	WatchVideoButton = "WatchVideoButton"

	// Participant registration flow
	FormAskName             = "FormAskName"
	FormAskGrade            = "FormAskGrade"
	FormAskDescription      = "FormAskDescription"
	FormAskImage            = "FormAskImage"
	FormAskVideo            = "FormAskVideo"
	FormTextRequired        = "FormTextRequired"
	FormPhotoRequired       = "FormPhotoRequired"
	FormInvalidURL          = "FormInvalidURL"
	FormUploadFailed        = "FormUploadFailed"
	FormPhotoOutsideFlow    = "FormPhotoOutsideFlow"
	ParticipantCreated      = "ParticipantCreated"
	ParticipantCreateFailed = "ParticipantCreateFailed"

	// Participant removal
	DeleteChoosePrompt      = "DeleteChoosePrompt"
	ParticipantDeleted      = "ParticipantDeleted"
	ParticipantDeleteFailed = "ParticipantDeleteFailed"

	// Channel registration flow
	ChannelAskHandle    = "ChannelAskHandle"
	ChannelAskName      = "ChannelAskName"
	ChannelCreated      = "ChannelCreated"
	ChannelCreateFailed = "ChannelCreateFailed"

	// Reset flow
	ResetConfirmPrompt = "ResetConfirmPrompt"
	ResetDone          = "ResetDone"
	ResetCancelled     = "ResetCancelled"
	ResetFailed        = "ResetFailed"

	// Posting to the channel
	PostDone   = "PostDone"
	PostFailed = "PostFailed"
)
