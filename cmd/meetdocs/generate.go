package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/spf13/cobra"
)

// errNoDocuments makes the command exit non-zero when every task failed.
var errNoDocuments = errors.New("no document was generated")

type generateOptions struct {
	input       domain.MeetingInput
	attendees   string
	outDir      string
	noSave      bool
	interactive bool
}

func newGenerateCmd(global *globalOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the meeting documents",
		Long: `Generate a meeting notice, a staff summary email, a minutes-of-meeting
template and a follow-up task list for one meeting.

Examples:
  meetdocs generate --date 2025-08-25 --time "10:00 AM" --agenda "Budget review; Hiring plan"
  meetdocs generate --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, global, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.input.Date, "date", "", "meeting date")
	f.StringVar(&opts.input.Time, "time", "", "meeting time")
	f.StringVar(&opts.input.Agenda, "agenda", "", "meeting agenda; separate items with ';'")
	f.StringVar(&opts.attendees, "attendees", "", "comma separated attendee names")
	f.StringVar(&opts.input.Location, "location", "", "meeting location (default \""+domain.DefaultLocation+"\")")
	f.StringVar(&opts.input.Duration, "duration", "", "meeting duration (default \""+domain.DefaultDuration+"\")")
	f.StringVar(&opts.input.Organizer, "organizer", "", "meeting organizer (default \""+domain.DefaultOrganizer+"\")")
	f.StringVarP(&opts.outDir, "out", "o", "", "output directory (default: configured output.dir)")
	f.BoolVar(&opts.noSave, "no-save", false, "print the documents without writing files")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for the meeting details")

	return cmd
}

func runGenerate(cmd *cobra.Command, global *globalOptions, opts *generateOptions) error {
	out := cmd.OutOrStdout()
	p := newPrompter(cmd.InOrStdin(), out)

	input := opts.input
	input.Attendees = domain.ParseAttendees(opts.attendees)
	if opts.interactive {
		fmt.Fprintln(out, "Please provide meeting details:")
		var err error
		if input, err = p.askMeeting(input); err != nil {
			return err
		}
	}

	// Input is validated before any configuration or credential is read.
	req, err := domain.NewMeetingRequest(input)
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig(cmd, global)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}

	app.events.RegisterHandler(newProgressPrinter(cmd.ErrOrStderr()))

	fmt.Fprintln(out, "Generating documents...")
	start := time.Now()
	rs, err := app.orchestrator.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("document generation failed: %w", err)
	}
	writeReport(out, rs, time.Since(start))

	if !rs.Succeeded() {
		return errNoDocuments
	}

	save := !opts.noSave
	if save && opts.interactive {
		save = p.confirm("\nSave documents?")
	}
	if !save {
		return nil
	}

	dir := opts.outDir
	if dir == "" {
		dir = cfg.Output.Dir
	}
	// Documents already generated are written even if an interrupt arrives now.
	saved, err := app.store.Save(context.WithoutCancel(ctx), rs, dir)
	writeSaved(out, dir, saved)
	if err != nil {
		return fmt.Errorf("failed to save documents: %w", err)
	}
	return nil
}
