package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/snackswap/snackswap/internal/client/api"
	"github.com/snackswap/snackswap/internal/client/config"
	"github.com/snackswap/snackswap/internal/client/inbox"
	"github.com/snackswap/snackswap/internal/client/state"
)

// feedDebounce is the window used to coalesce bursts of realtime events
// into a single inbox refresh.
const feedDebounce = 300 * time.Millisecond

// App wires the API client, the inbox feed and the in-flight interactive
// flows together behind the REPL.
type App struct {
	config *config.Config
	client *api.Client
	feed   *inbox.Feed

	user          *api.User
	signup        *state.SignupFlow
	reset         *state.ResetFlow
	pendingDelete *state.DeleteTarget

	sessionCancel context.CancelFunc
	reader        *bufio.Reader
}

func NewApp(c *config.Config) *App {
	a := &App{
		config: c,
		client: api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
	a.feed = inbox.NewFeed(a.loadSnapshot, feedDebounce)
	a.feed.OnUpdate(func(s inbox.Snapshot) {
		if s.Unread > 0 {
			printlnFn(fmt.Sprintf("* inbox updated: %d unread", s.Unread))
		}
	})
	return a
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to snackswap (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
	a.endSession()
}

func (a *App) isLoggedIn() bool {
	return a.user != nil && a.client.LoggedIn()
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.user.Username)
}

// startSession records the authenticated user, opens the realtime event
// stream and starts the background inbox refresher. It is called after a
// successful login or completed registration.
func (a *App) startSession(ctx context.Context, u *api.User) {
	a.endSession()
	a.user = u

	sctx, cancel := context.WithCancel(ctx)
	a.sessionCancel = cancel

	go a.feed.Run(sctx)
	go a.watchEvents(sctx)

	a.feed.Invalidate()
}

// endSession stops the background goroutines and forgets the current user.
// Tokens are cleared by Logout separately.
func (a *App) endSession() {
	if a.sessionCancel != nil {
		a.sessionCancel()
		a.sessionCancel = nil
	}
	a.user = nil
}

// watchEvents keeps a websocket open to the server and invalidates the
// inbox feed whenever a swap or message event arrives. The stream is
// best-effort: on any error it backs off and redials until ctx is done.
func (a *App) watchEvents(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := a.client.DialEvents(ctx)
		if err != nil {
			select {
			case <-time.After(5 * time.Second):
				continue
			case <-ctx.Done():
				return
			}
		}

		go func() {
			<-ctx.Done()
			conn.Close()
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				conn.Close()
				break
			}
			var ev api.Event
			if err := json.Unmarshal(data, &ev); err != nil {
				continue
			}
			a.feed.Invalidate()
		}
	}
}

// loadSnapshot fetches both swap lists and the unread counter and maps them
// into the feed's snapshot shape.
func (a *App) loadSnapshot(ctx context.Context) (*inbox.Snapshot, error) {
	received, err := a.client.ListReceived(ctx)
	if err != nil {
		return nil, err
	}
	sent, err := a.client.ListSent(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := a.client.UnreadCount(ctx)
	if err != nil {
		return nil, err
	}

	return &inbox.Snapshot{
		Received: toSwapRows(received),
		Sent:     toSwapRows(sent),
		Unread:   unread,
	}, nil
}

func toSwapRows(swaps []api.SwapWithDetails) []inbox.SwapRow {
	rows := make([]inbox.SwapRow, 0, len(swaps))
	for _, s := range swaps {
		rows = append(rows, inbox.SwapRow{
			ID:           s.ID,
			FoodName:     s.Food.FoodName,
			Counterparty: s.Counterparty.Username,
			Status:       s.Status,
			CreatedAt:    s.CreatedAt,
		})
	}
	return rows
}

// reportErr prints a command error in a user-friendly way. Validation
// errors list the offending fields, everything else prints as a single line.
func reportErr(err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.IsValidation() {
		printlnFn("Please fix the following:")
		for field, problem := range apiErr.Fields {
			printlnFn(fmt.Sprintf("  %s: %s", field, problem))
		}
		return
	}
	printlnFn("Error:", err.Error())
}
