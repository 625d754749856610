package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"careportal/internal/api"
)

var errNotLoggedIn = errors.New("not logged in")

// Messages prints the conversation with the given doctor, oldest first.
func (a *App) Messages(ctx context.Context, doctorID string) error {
	cur, _ := a.sessions.Current()
	if cur.AccountID == "" {
		printlnFn("Log in first.")
		return errNotLoggedIn
	}

	msgs, err := a.care.Messages(ctx, api.ConversationID(cur.AccountID, doctorID))
	if err != nil {
		return a.report(err)
	}
	if len(msgs) == 0 {
		printlnFn("No messages yet.")
		return nil
	}
	for _, m := range msgs {
		who := "them"
		if m.Sender == cur.AccountID {
			who = "you"
		}
		printlnFn(fmt.Sprintf("[%s] %s: %s", m.CreatedAt.Format("2006-01-02 15:04"), who, m.Content))
	}
	return nil
}

// Send reads a message body and delivers it to the doctor.
func (a *App) Send(ctx context.Context, doctorID string) error {
	content, err := GetMultiline(a.reader, "Message", os.Stdout)
	if err != nil {
		return err
	}
	if content == "" {
		printlnFn("Nothing to send.")
		return nil
	}

	if _, err := a.care.SendMessage(ctx, doctorID, content); err != nil {
		return a.report(err)
	}

	printlnFn("Sent.")
	return nil
}
