package models

import "time"

// Message is one chat line on a swap thread. Read flips false→true when the
// non-sender opens the thread.
type Message struct {
	ID        string
	SwapID    string
	SenderID  string
	Body      string
	Read      bool
	CreatedAt time.Time
}
