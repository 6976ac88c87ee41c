package domain

import "testing"

func TestParticipantValidate(t *testing.T) {
	valid := Participant{
		FullName:    "Aliya Karimova",
		Grade:       "9-B",
		Description: "Sings and plays the dutar",
		ImageURL:    "https://cdn.example.com/p/1.jpg",
		VideoURL:    "https://youtube.com/watch?v=abc",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Valid participant rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(p *Participant)
	}{
		{"empty full name", func(p *Participant) { p.FullName = "" }},
		{"empty grade", func(p *Participant) { p.Grade = "" }},
		{"empty description", func(p *Participant) { p.Description = "" }},
		{"malformed image url", func(p *Participant) { p.ImageURL = "not a url" }},
		{"malformed video url", func(p *Participant) { p.VideoURL = "not a url" }},
		{"negative vote count", func(p *Participant) { p.VoteCount = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tc.name)
			}
		})
	}

	// Media URLs are optional
	bare := valid
	bare.ImageURL = ""
	bare.VideoURL = ""
	if err := bare.Validate(); err != nil {
		t.Errorf("Participant without media rejected: %v", err)
	}
}

func TestChannelValidate(t *testing.T) {
	valid := Channel{Handle: "@school_news", Name: "School News"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Valid channel rejected: %v", err)
	}

	noHandle := valid
	noHandle.Handle = ""
	if err := noHandle.Validate(); err == nil {
		t.Error("Expected validation error for empty handle")
	}

	noName := valid
	noName.Name = ""
	if err := noName.Validate(); err == nil {
		t.Error("Expected validation error for empty name")
	}
}

func TestChannelLink(t *testing.T) {
	cases := []struct {
		handle string
		want   string
	}{
		{"@school_news", "https://t.me/school_news"},
		{"school_news", "https://t.me/school_news"},
	}
	for _, tc := range cases {
		c := Channel{Handle: tc.handle}
		if got := c.Link(); got != tc.want {
			t.Errorf("Link(%s) = %s, want %s", tc.handle, got, tc.want)
		}
	}
}

func TestNormalizeHandle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"school_news", "@school_news"},
		{"@school_news", "@school_news"},
		{" @school_news ", "@school_news"},
		{"https://t.me/school_news", "@school_news"},
		{"t.me/school_news", "@school_news"},
		{"-1001234567890", "-1001234567890"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeHandle(tc.in); got != tc.want {
			t.Errorf("NormalizeHandle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
