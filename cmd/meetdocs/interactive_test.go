package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskMeeting(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("2025-08-25\n10:00\n Budget \nRoom 4\n\nCFO\nAlice, , Bob\n"), &out)

	in, err := p.askMeeting(domain.MeetingInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.MeetingInput{
		Date:      "2025-08-25",
		Time:      "10:00",
		Agenda:    "Budget",
		Location:  "Room 4",
		Organizer: "CFO",
		Attendees: []string{"Alice", "Bob"},
	}, in)
	assert.Contains(t, out.String(), "Duration (optional): ")
}

func TestAskMeetingKeepsFlagValues(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\n\nAgenda from prompt\n\n\n\n\n"), &out)

	in, err := p.askMeeting(domain.MeetingInput{Date: "2025-08-25", Time: "10:00", Attendees: []string{"Ann"}})
	require.NoError(t, err)

	assert.Equal(t, "2025-08-25", in.Date)
	assert.Equal(t, "Agenda from prompt", in.Agenda)
	assert.Equal(t, []string{"Ann"}, in.Attendees)
	assert.Contains(t, out.String(), "Date (YYYY-MM-DD) [2025-08-25]: ")
	assert.Contains(t, out.String(), "Attendees (comma-separated, optional) [Ann]: ")
}

func TestAskMeetingEndOfInput(t *testing.T) {
	p := newPrompter(strings.NewReader("2025-08-25\n"), io.Discard)

	_, err := p.askMeeting(domain.MeetingInput{})
	assert.ErrorIs(t, err, io.EOF)
}

func TestAskLastLineWithoutNewline(t *testing.T) {
	p := newPrompter(strings.NewReader("yes"), io.Discard)
	assert.True(t, p.confirm("Save?"))
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"y\n":   true,
		"Y\n":   true,
		"yes\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
	}
	for input, want := range tests {
		p := newPrompter(strings.NewReader(input), io.Discard)
		assert.Equal(t, want, p.confirm("Save?"), "input %q", input)
	}
}
