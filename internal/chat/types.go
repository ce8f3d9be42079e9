package chat

import (
	"context"

	"weatherbot/internal/nlu"
)

// Responder is what the front-ends talk to.
type Responder interface {
	Chat(ctx context.Context, text string) (string, nlu.Intent)
}

// Role marks who wrote a line of a transcript.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one line of a front-end transcript.
type Message struct {
	Role    Role
	Content string
	Intent  nlu.Intent
}
