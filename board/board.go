package board

import (
	"context"
	"time"
)

// Card represents a card on the task board.
type Card struct {
	ID      string
	Name    string
	Desc    string
	URL     string
	ListID  string
	BoardID string
	Closed  bool
	Due     *time.Time
	Labels  []string
	Members []string
}

// List represents a column on a board.
type List struct {
	ID      string
	Name    string
	BoardID string
	Closed  bool
}

// Board represents a task board.
type Board struct {
	ID     string
	Name   string
	URL    string
	Closed bool
}

// Comment represents a comment posted on a card.
type Comment struct {
	ID     string
	CardID string
	Text   string
	Date   time.Time
}

// CardOptions holds options for creating a card.
type CardOptions struct {
	ListID  string
	Name    string
	Desc    string
	Due     *time.Time
	Labels  []string
	Members []string
}

// CardFields holds fields to update on a card. Nil fields are left
// unchanged.
type CardFields struct {
	Name   *string
	Desc   *string
	Closed *bool
	ListID *string
	Due    *time.Time
}

// Adapter abstracts a task board service such as Trello.
type Adapter interface {
	// CreateCard creates a new card in the given list.
	CreateCard(ctx context.Context, opts CardOptions) (*Card, error)

	// UpdateCard updates the non-nil fields on the card.
	UpdateCard(ctx context.Context, cardID string, fields CardFields) (*Card, error)

	// MoveCard moves the card to another list.
	MoveCard(ctx context.Context, cardID, listID string) (*Card, error)

	// AddComment posts a comment on the card.
	AddComment(ctx context.Context, cardID, text string) (*Comment, error)

	// ListBoards returns the boards visible to the authenticated member.
	ListBoards(ctx context.Context) ([]Board, error)

	// ListLists returns the lists on a board.
	ListLists(ctx context.Context, boardID string) ([]List, error)

	// ListCards returns the cards in a list.
	ListCards(ctx context.Context, listID string) ([]Card, error)
}
