package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/snackswap/snackswap/internal/client/inbox"
)

// Swap requests a swap on someone else's listing. The server posts the
// opening message on the new thread.
func (a *App) Swap(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Listing id", os.Stdout)
	if err != nil {
		return err
	}

	f, err := a.client.GetFood(ctx, id)
	if err != nil {
		reportErr(err)
		return err
	}
	if a.user != nil && f.UserID == a.user.ID {
		printlnFn("You can't request your own food!")
		return nil
	}

	s, err := a.client.CreateSwap(ctx, f.ID)
	if err != nil {
		reportErr(err)
		return err
	}

	a.feed.Invalidate()
	printlnFn(fmt.Sprintf("Request sent (swap %s). The owner has been notified.", s.ID))
	return nil
}

// Inbox refreshes and prints the received requests plus the unread counter.
func (a *App) Inbox(ctx context.Context) error {
	if err := a.feed.Refresh(ctx); err != nil {
		reportErr(err)
		return err
	}

	snap := a.feed.Snapshot()
	printlnFn(fmt.Sprintf("Unread messages: %d", snap.Unread))
	if len(snap.Received) == 0 {
		printlnFn("No requests received.")
		return nil
	}
	for _, row := range snap.Received {
		printlnFn(formatSwapRow(row))
	}
	return nil
}

// Sent prints the requests the user has made.
func (a *App) Sent(ctx context.Context) error {
	if err := a.feed.Refresh(ctx); err != nil {
		reportErr(err)
		return err
	}

	snap := a.feed.Snapshot()
	if len(snap.Sent) == 0 {
		printlnFn("You have not requested any swaps.")
		return nil
	}
	for _, row := range snap.Sent {
		printlnFn(formatSwapRow(row))
	}
	return nil
}

// Respond accepts or declines a received request.
func (a *App) Respond(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Swap id", os.Stdout)
	if err != nil {
		return err
	}
	accept, err := getConfirm(a.reader, "Accept this request?", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.RespondSwap(ctx, id, accept); err != nil {
		reportErr(err)
		return err
	}

	a.feed.Invalidate()
	if accept {
		printlnFn("Accepted. Arrange the pickup over chat.")
	} else {
		printlnFn("Declined.")
	}
	return nil
}

// Chat opens a swap's thread. Opening the thread marks the counterparty's
// messages as read on the server.
func (a *App) Chat(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Swap id", os.Stdout)
	if err != nil {
		return err
	}

	messages, err := a.client.OpenThread(ctx, id)
	if err != nil {
		reportErr(err)
		return err
	}

	a.feed.Invalidate()
	if len(messages) == 0 {
		printlnFn("No messages yet.")
		return nil
	}
	for _, m := range messages {
		who := "them"
		if a.user != nil && m.SenderID == a.user.ID {
			who = "me"
		}
		printlnFn(fmt.Sprintf("[%s] %s: %s", m.CreatedAt.Format("Jan 2 15:04"), who, m.Body))
	}
	return nil
}

// Send posts a message on a swap thread.
func (a *App) Send(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Swap id", os.Stdout)
	if err != nil {
		return err
	}
	body, err := getSimpleText(a.reader, "Message", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.client.SendMessage(ctx, id, body); err != nil {
		reportErr(err)
		return err
	}

	printlnFn("Sent.")
	return nil
}

func formatSwapRow(row inbox.SwapRow) string {
	return fmt.Sprintf("%s | %s | with %s | %s | %s",
		row.ID, row.FoodName, row.Counterparty, row.Status, row.CreatedAt.Format("Jan 2 15:04"))
}
