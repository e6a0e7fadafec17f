package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/JaimeStill/agent-meet/internal/agentform"
	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/internal/console"
)

type formFlags struct {
	name         string
	instructions string
}

func parseFormFlags(name string, args []string) (formFlags, *pflag.FlagSet, error) {
	var f formFlags
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVar(&f.name, "name", "", "agent name")
	flagSet.StringVar(&f.instructions, "instructions", "", "agent instructions")
	err := flagSet.Parse(args)
	return f, flagSet, err
}

// interactive reports whether the form should be shown: any field left
// unset on the command line is filled in the terminal.
func (f formFlags) interactive(fs *pflag.FlagSet) bool {
	return !fs.Changed("name") || !fs.Changed("instructions")
}

func runCreate(a *app, args []string) error {
	f, flagSet, err := parseFormFlags("create", args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	return a.runForm(f, f.interactive(flagSet), nil)
}

func runEdit(a *app, args []string) error {
	f, flagSet, err := parseFormFlags("edit", args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("edit requires exactly one agent id")
	}

	id, err := uuid.Parse(flagSet.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid agent id %q: %w", flagSet.Arg(0), err)
	}

	existing, err := a.agents.GetOne(context.Background(), id)
	if err != nil {
		return err
	}

	interactive := !flagSet.Changed("name") && !flagSet.Changed("instructions")
	return a.runForm(f, interactive, existing)
}

func (a *app) runForm(f formFlags, interactive bool, initial *agents.Agent) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !interactive {
		return a.submitFlags(ctx, f, initial)
	}

	toasts := console.NewToaster(4)
	defer toasts.Close()

	form := agentform.New(a.agents, a.cache, toasts, agentform.Options{
		Initial:   initial,
		OnSuccess: func() { a.logger.Info("agent saved") },
		OnCancel:  func() { a.logger.Info("agent form cancelled") },
		Logger:    a.logger,
	})
	if f.name != "" {
		form.SetName(f.name)
	}
	if f.instructions != "" {
		form.SetInstructions(f.instructions)
	}

	result, saved, err := console.Run(ctx, console.NewModel(ctx, form, toasts))
	if err != nil {
		return err
	}

	switch result {
	case console.ResultSaved:
		fmt.Printf("%s %s (%s)\n", pastTense(form.Mode()), saved.Name, saved.ID)
	case console.ResultCancelled:
		fmt.Println("cancelled")
	}
	return nil
}

func (a *app) submitFlags(ctx context.Context, f formFlags, initial *agents.Agent) error {
	var failure string
	notifier := agentform.NotifierFunc(func(n agentform.Notification) {
		if n.Severity == agentform.SeverityError {
			failure = n.Message
		}
	})

	form := agentform.New(a.agents, a.cache, notifier, agentform.Options{
		Initial: initial,
		Logger:  a.logger,
	})
	if initial == nil || f.name != "" {
		form.SetName(f.name)
	}
	if initial == nil || f.instructions != "" {
		form.SetInstructions(f.instructions)
	}

	out := form.Submit(ctx)
	switch out.Status {
	case agentform.StatusSucceeded:
		fmt.Printf("%s %s (%s)\n", pastTense(form.Mode()), out.Agent.Name, out.Agent.ID)
		return nil
	case agentform.StatusInvalid:
		return fmt.Errorf("invalid agent: %s", out.Errors)
	case agentform.StatusFailed:
		return errors.New(failure)
	default:
		return fmt.Errorf("submit %s", out.Status)
	}
}

func pastTense(mode agentform.Mode) string {
	if mode == agentform.ModeUpdate {
		return "updated"
	}
	return "created"
}
