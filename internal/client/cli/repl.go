package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Swap(ctx context.Context) error
	Inbox(ctx context.Context) error
	Sent(ctx context.Context) error
	Respond(ctx context.Context) error
	Chat(ctx context.Context) error
	Send(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Prefs(ctx context.Context) error
	Passwd(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the snackswap CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — start registration (sends an email code)
//	  - verify         — finish registration with the emailed code
//	  - resend         — resend the registration code
//	  - login          — authenticate with email/username and password
//	  - forgot         — request a password reset code
//	  - reset          — verify the reset code and set a new password
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - (l)ist         — browse listings (with optional search and category)
//	  - show           — show a single listing
//	  - add            — post a listing (with optional photo upload)
//	  - edit           — edit one of your listings
//	  - delete         — remove one of your listings (asks to confirm)
//	  - swap           — request a swap on a listing
//	  - inbox          — show received requests and unread count
//	  - sent           — show requests you sent
//	  - respond        — accept or decline a received request
//	  - chat           — open a swap's message thread
//	  - send           — send a message on a thread
//	  - profile        — show your profile
//	  - editprofile    — edit your profile
//	  - prefs          — edit notification preferences
//	  - passwd         — change your password
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("snackswap %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show, add, edit, delete, swap, inbox, sent, respond, chat, send, profile, editprofile, prefs, passwd, logout, exit")
			} else {
				printlnFn("Available commands: register, verify, resend, login, forgot, reset, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "resend":
			_ = a.Resend(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "swap":
			_ = a.Swap(ctx)

		case "inbox":
			_ = a.Inbox(ctx)

		case "sent":
			_ = a.Sent(ctx)

		case "respond":
			_ = a.Respond(ctx)

		case "chat":
			_ = a.Chat(ctx)

		case "send":
			_ = a.Send(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "prefs":
			_ = a.Prefs(ctx)

		case "passwd":
			_ = a.Passwd(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
