package cli

import (
	"context"
	"fmt"
)

// Notifications lists the patient's notifications.
func (a *App) Notifications(ctx context.Context) error {
	items, err := a.care.Notifications(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(items) == 0 {
		printlnFn("No notifications.")
		return nil
	}
	for _, n := range items {
		printlnFn(fmt.Sprintf("%s  [%s] %s: %s (%s)", n.ID, n.Type, n.Title, n.Message, n.Time))
	}
	return nil
}

// DeleteNotification dismisses a notification.
func (a *App) DeleteNotification(ctx context.Context, id string) error {
	if err := a.care.DeleteNotification(ctx, id); err != nil {
		return a.report(err)
	}
	printlnFn("Dismissed", id)
	return nil
}
