package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
)

// RunChatTUI prints the conversation so far and reads questions until the
// user submits an empty line.
func RunChatTUI(ctx context.Context, app *App) error {
	fmt.Println(RenderTranscript(app.Session.Messages()))

	for {
		var text string

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Ask about a trip").
					Description("Leave empty to return to the menu.").
					Placeholder("Next train from Central to Parramatta").
					Value(&text),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		if strings.TrimSpace(text) == "" {
			return nil
		}

		fmt.Println(RenderMessage(chat.Message{Role: chat.RoleUser, Content: text}))

		var reply chat.Message
		_ = spinner.New().
			Title("Looking up journeys...").
			Action(func() {
				reply = app.Session.Submit(ctx, text)
			}).
			Run()

		fmt.Println(RenderMessage(reply))

		if err := runJourneyActions(ctx, app, reply); err != nil {
			return err
		}
	}
}

// runJourneyActions offers the actions attached to a listing until the user
// moves on. A swap yields a new listing whose actions are offered in turn.
func runJourneyActions(ctx context.Context, app *App, reply chat.Message) error {
	for len(reply.Actions) > 0 && reply.Journey != nil {
		var choice string

		options := make([]huh.Option[string], 0, len(reply.Actions)+1)
		for _, a := range reply.Actions {
			options = append(options, huh.NewOption(actionLabel(a), string(a)))
		}
		options = append(options, huh.NewOption("Continue", ""))

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("%s → %s", reply.Journey.From, reply.Journey.To)).
					Options(options...).
					Value(&choice),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		if choice == "" {
			return nil
		}

		var next chat.Message
		_ = spinner.New().
			Title("Working...").
			Action(func() {
				next = app.Session.RunAction(ctx, chat.Action(choice), reply.Journey.Route)
			}).
			Run()

		fmt.Println(RenderMessage(next))

		if next.Journey != nil {
			reply = next
		}
	}
	return nil
}
