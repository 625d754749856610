package cli

import (
	"context"
	"fmt"
)

// Billing prints the current subscription plan and its status.
func (a *App) Billing(ctx context.Context) error {
	sub, err := a.care.SubscriptionStatus(ctx)
	if err != nil {
		return a.report(err)
	}

	printlnFn(fmt.Sprintf("Plan: %s (%s)", sub.Plan, sub.Status))
	if sub.RenewsAt != "" {
		printlnFn("Renews:", sub.RenewsAt)
	}
	return nil
}

// Subscribe starts a checkout for the given plan. Payment happens in the
// browser at the printed URL; afterwards 'confirm <checkout_id>' activates
// the plan.
func (a *App) Subscribe(ctx context.Context, plan string) error {
	url, err := a.care.Subscribe(ctx, plan)
	if err != nil {
		return a.report(err)
	}

	printlnFn("Open this URL in your browser to complete payment:")
	printlnFn("  " + url)
	printlnFn("Then run: confirm <checkout_id>")
	return nil
}

// Confirm finalizes a completed checkout.
func (a *App) Confirm(ctx context.Context, checkoutID string) error {
	sub, err := a.care.ConfirmCheckout(ctx, checkoutID)
	if err != nil {
		return a.report(err)
	}

	printlnFn(fmt.Sprintf("Subscription active: %s (%s)", sub.Plan, sub.Status))
	return nil
}
