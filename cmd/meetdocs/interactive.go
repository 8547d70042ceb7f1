package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/meetdocs/internal/domain"
)

// prompter asks questions on out and reads one line answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints the question and returns the trimmed answer. An answer cut short
// by end of input is returned as is; io.EOF is only reported when nothing was
// read.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askMeeting collects meeting details field by field. Values already present
// in defaults are offered as the answer for an empty line.
func (p *prompter) askMeeting(defaults domain.MeetingInput) (domain.MeetingInput, error) {
	in := defaults

	fields := []struct {
		question string
		target   *string
	}{
		{"Date (YYYY-MM-DD)", &in.Date},
		{"Time (e.g., 2:00 PM)", &in.Time},
		{"Agenda (separate items with ';')", &in.Agenda},
		{"Location (optional)", &in.Location},
		{"Duration (optional)", &in.Duration},
		{"Organizer (optional)", &in.Organizer},
	}

	for _, f := range fields {
		answer, err := p.ask(withDefault(f.question, *f.target))
		if err != nil {
			return domain.MeetingInput{}, fmt.Errorf("failed to read %s: %w", strings.ToLower(f.question), err)
		}
		if answer != "" {
			*f.target = answer
		}
	}

	answer, err := p.ask(withDefault("Attendees (comma-separated, optional)", strings.Join(in.Attendees, ", ")))
	if err != nil {
		return domain.MeetingInput{}, fmt.Errorf("failed to read attendees: %w", err)
	}
	if answer != "" {
		in.Attendees = domain.ParseAttendees(answer)
	}

	return in, nil
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (p *prompter) confirm(question string) bool {
	answer, err := p.ask(question + " (y/n): ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func withDefault(question, current string) string {
	if current == "" {
		return question + ": "
	}
	return fmt.Sprintf("%s [%s]: ", question, current)
}
