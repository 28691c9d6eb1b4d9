package board

import "context"

// MockAdapter is a mock implementation of Adapter for testing.
type MockAdapter struct {
	CreateCardFunc func(ctx context.Context, opts CardOptions) (*Card, error)
	UpdateCardFunc func(ctx context.Context, cardID string, fields CardFields) (*Card, error)
	MoveCardFunc   func(ctx context.Context, cardID, listID string) (*Card, error)
	AddCommentFunc func(ctx context.Context, cardID, text string) (*Comment, error)
	ListBoardsFunc func(ctx context.Context) ([]Board, error)
	ListListsFunc  func(ctx context.Context, boardID string) ([]List, error)
	ListCardsFunc  func(ctx context.Context, listID string) ([]Card, error)
}

// CreateCard calls CreateCardFunc if set, otherwise returns a card
// with a fixed id.
func (m *MockAdapter) CreateCard(ctx context.Context, opts CardOptions) (*Card, error) {
	if m.CreateCardFunc != nil {
		return m.CreateCardFunc(ctx, opts)
	}
	return &Card{
		ID:     "card-1",
		Name:   opts.Name,
		Desc:   opts.Desc,
		ListID: opts.ListID,
	}, nil
}

// UpdateCard calls UpdateCardFunc if set, otherwise echoes the update.
func (m *MockAdapter) UpdateCard(ctx context.Context, cardID string, fields CardFields) (*Card, error) {
	if m.UpdateCardFunc != nil {
		return m.UpdateCardFunc(ctx, cardID, fields)
	}
	card := &Card{ID: cardID}
	if fields.Name != nil {
		card.Name = *fields.Name
	}
	if fields.ListID != nil {
		card.ListID = *fields.ListID
	}
	if fields.Closed != nil {
		card.Closed = *fields.Closed
	}
	return card, nil
}

// MoveCard calls MoveCardFunc if set, otherwise returns the moved card.
func (m *MockAdapter) MoveCard(ctx context.Context, cardID, listID string) (*Card, error) {
	if m.MoveCardFunc != nil {
		return m.MoveCardFunc(ctx, cardID, listID)
	}
	return &Card{ID: cardID, ListID: listID}, nil
}

// AddComment calls AddCommentFunc if set, otherwise returns the comment.
func (m *MockAdapter) AddComment(ctx context.Context, cardID, text string) (*Comment, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, cardID, text)
	}
	return &Comment{ID: "comment-1", CardID: cardID, Text: text}, nil
}

// ListBoards calls ListBoardsFunc if set, otherwise returns nil.
func (m *MockAdapter) ListBoards(ctx context.Context) ([]Board, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx)
	}
	return nil, nil
}

// ListLists calls ListListsFunc if set, otherwise returns nil.
func (m *MockAdapter) ListLists(ctx context.Context, boardID string) ([]List, error) {
	if m.ListListsFunc != nil {
		return m.ListListsFunc(ctx, boardID)
	}
	return nil, nil
}

// ListCards calls ListCardsFunc if set, otherwise returns nil.
func (m *MockAdapter) ListCards(ctx context.Context, listID string) ([]Card, error) {
	if m.ListCardsFunc != nil {
		return m.ListCardsFunc(ctx, listID)
	}
	return nil, nil
}
