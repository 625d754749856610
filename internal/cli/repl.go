package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	SwitchAccount(ctx context.Context, accountID string) error
	Accounts(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Doctors(ctx context.Context) error
	DoctorInfo(ctx context.Context, id string) error
	Appointments(ctx context.Context) error
	Book(ctx context.Context) error
	Reschedule(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Messages(ctx context.Context, doctorID string) error
	Send(ctx context.Context, doctorID string) error
	Symptoms(ctx context.Context) error
	Records(ctx context.Context) error
	Upload(ctx context.Context) error
	Export(ctx context.Context, id string) error
	DeleteRecord(ctx context.Context, id string) error
	Notifications(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Billing(ctx context.Context) error
	Subscribe(ctx context.Context, plan string) error
	Confirm(ctx context.Context, checkoutID string) error
}

// runREPL starts a simple read–eval–print loop for the careportal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands that operate on a single object (cancel, messages, confirm, ...)
// take the object id as the second token; the usage line is printed when it
// is missing.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cp %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		arg := func(usage string) (string, bool) {
			if len(args) == 0 {
				printlnFn("Usage: " + usage)
				return "", false
			}
			return args[0], true
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Account:      logout, switch <account>, accounts, whoami")
				printlnFn("Care:         doctors, doctor <id>, appointments, book, reschedule <id>, cancel <id>")
				printlnFn("Messaging:    messages <doctor_id>, send <doctor_id>")
				printlnFn("Health:       symptoms, records, upload, export <id>, delrecord <id>")
				printlnFn("Other:        notifications, delnotif <id>, profile, editprofile, billing, subscribe <plan>, confirm <checkout_id>, exit")
			} else {
				printlnFn("Available commands: register, login, switch <account>, accounts, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "switch":
			if id, ok := arg("switch <account>"); ok {
				_ = a.SwitchAccount(ctx, id)
			}

		case "accounts":
			_ = a.Accounts(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "doctors":
			_ = a.Doctors(ctx)

		case "doctor":
			if id, ok := arg("doctor <id>"); ok {
				_ = a.DoctorInfo(ctx, id)
			}

		case "appointments":
			_ = a.Appointments(ctx)

		case "book":
			_ = a.Book(ctx)

		case "reschedule":
			if id, ok := arg("reschedule <id>"); ok {
				_ = a.Reschedule(ctx, id)
			}

		case "cancel":
			if id, ok := arg("cancel <id>"); ok {
				_ = a.Cancel(ctx, id)
			}

		case "messages":
			if id, ok := arg("messages <doctor_id>"); ok {
				_ = a.Messages(ctx, id)
			}

		case "send":
			if id, ok := arg("send <doctor_id>"); ok {
				_ = a.Send(ctx, id)
			}

		case "symptoms":
			_ = a.Symptoms(ctx)

		case "records":
			_ = a.Records(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "export":
			if id, ok := arg("export <id>"); ok {
				_ = a.Export(ctx, id)
			}

		case "delrecord":
			if id, ok := arg("delrecord <id>"); ok {
				_ = a.DeleteRecord(ctx, id)
			}

		case "notifications":
			_ = a.Notifications(ctx)

		case "delnotif":
			if id, ok := arg("delnotif <id>"); ok {
				_ = a.DeleteNotification(ctx, id)
			}

		case "profile":
			_ = a.ShowProfile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "billing":
			_ = a.Billing(ctx)

		case "subscribe":
			if plan, ok := arg("subscribe <plan>"); ok {
				_ = a.Subscribe(ctx, plan)
			}

		case "confirm":
			if id, ok := arg("confirm <checkout_id>"); ok {
				_ = a.Confirm(ctx, id)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
