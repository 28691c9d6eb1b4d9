package board

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	taskhttp "github.com/taskflow-dev/taskflow/http"
)

// DefaultBaseURL is the Trello REST API endpoint.
const DefaultBaseURL = "https://api.trello.com"

// listCardsPageSize is the page size used when listing cards.
const listCardsPageSize = 100

// TrelloAdapter implements Adapter using the Trello REST API.
type TrelloAdapter struct {
	client *taskhttp.Client
}

// TrelloOption configures a TrelloAdapter.
type TrelloOption func(*trelloConfig)

type trelloConfig struct {
	baseURL    string
	httpClient *http.Client
}

// WithTrelloBaseURL overrides the API endpoint, primarily for tests.
func WithTrelloBaseURL(baseURL string) TrelloOption {
	return func(cfg *trelloConfig) {
		cfg.baseURL = baseURL
	}
}

// WithTrelloHTTPClient sets a custom HTTP client.
func WithTrelloHTTPClient(httpClient *http.Client) TrelloOption {
	return func(cfg *trelloConfig) {
		cfg.httpClient = httpClient
	}
}

// NewTrelloAdapter creates a Trello-backed board adapter. Trello
// authenticates through key and token query parameters attached to
// every request.
func NewTrelloAdapter(key, token string, opts ...TrelloOption) (*TrelloAdapter, error) {
	if key == "" {
		return nil, ErrConfigKeyRequired
	}
	if token == "" {
		return nil, ErrConfigTokenRequired
	}

	cfg := &trelloConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	client := taskhttp.NewClient(taskhttp.ClientConfig{
		Client:      cfg.httpClient,
		BaseURL:     cfg.baseURL,
		ServiceName: "trello",
		BeforeRequest: func(req *http.Request) {
			q := req.URL.Query()
			q.Set("key", key)
			q.Set("token", token)
			req.URL.RawQuery = q.Encode()
		},
	})

	return &TrelloAdapter{client: client}, nil
}

// trelloCard is the wire representation of a Trello card.
type trelloCard struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Desc      string        `json:"desc"`
	URL       string        `json:"url"`
	IDList    string        `json:"idList"`
	IDBoard   string        `json:"idBoard"`
	Closed    bool          `json:"closed"`
	Due       *time.Time    `json:"due"`
	IDMembers []string      `json:"idMembers"`
	Labels    []trelloLabel `json:"labels"`
}

type trelloLabel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type trelloList struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IDBoard string `json:"idBoard"`
	Closed  bool   `json:"closed"`
}

type trelloBoard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Closed bool   `json:"closed"`
}

type trelloComment struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Data struct {
		Text string `json:"text"`
		Card struct {
			ID string `json:"id"`
		} `json:"card"`
	} `json:"data"`
}

// createCardRequest is the body for POST /1/cards.
type createCardRequest struct {
	IDList    string   `json:"idList"`
	Name      string   `json:"name"`
	Desc      string   `json:"desc,omitempty"`
	Due       string   `json:"due,omitempty"`
	IDLabels  []string `json:"idLabels,omitempty"`
	IDMembers []string `json:"idMembers,omitempty"`
}

// updateCardRequest is the body for PUT /1/cards/{id}. Pointer fields
// are omitted when nil so Trello leaves them untouched.
type updateCardRequest struct {
	Name   *string `json:"name,omitempty"`
	Desc   *string `json:"desc,omitempty"`
	Closed *bool   `json:"closed,omitempty"`
	IDList *string `json:"idList,omitempty"`
	Due    *string `json:"due,omitempty"`
}

// CreateCard creates a card in the given list.
func (a *TrelloAdapter) CreateCard(ctx context.Context, opts CardOptions) (*Card, error) {
	if opts.ListID == "" {
		return nil, ErrListIDRequired
	}
	if opts.Name == "" {
		return nil, ErrNameRequired
	}

	req := createCardRequest{
		IDList:    opts.ListID,
		Name:      opts.Name,
		Desc:      opts.Desc,
		IDLabels:  opts.Labels,
		IDMembers: opts.Members,
	}
	if opts.Due != nil {
		req.Due = opts.Due.Format(time.RFC3339)
	}

	var tc trelloCard
	if err := a.client.Post(ctx, "/1/cards", req, &tc); err != nil {
		if taskhttp.IsNotFound(err) {
			return nil, fmt.Errorf("list %s: %w", opts.ListID, ErrListNotFound)
		}
		return nil, err
	}

	slog.Debug("created card",
		"card", tc.ID,
		"list", opts.ListID,
		"name", opts.Name)

	return cardFromTrello(&tc), nil
}

// UpdateCard updates the non-nil fields on a card.
func (a *TrelloAdapter) UpdateCard(ctx context.Context, cardID string, fields CardFields) (*Card, error) {
	if cardID == "" {
		return nil, ErrCardIDRequired
	}

	req := updateCardRequest{
		Name:   fields.Name,
		Desc:   fields.Desc,
		Closed: fields.Closed,
		IDList: fields.ListID,
	}
	if fields.Due != nil {
		due := fields.Due.Format(time.RFC3339)
		req.Due = &due
	}

	var tc trelloCard
	if err := a.client.Put(ctx, "/1/cards/"+cardID, req, &tc); err != nil {
		if taskhttp.IsNotFound(err) {
			return nil, fmt.Errorf("card %s: %w", cardID, ErrCardNotFound)
		}
		return nil, err
	}

	return cardFromTrello(&tc), nil
}

// MoveCard moves a card to another list.
func (a *TrelloAdapter) MoveCard(ctx context.Context, cardID, listID string) (*Card, error) {
	if listID == "" {
		return nil, ErrListIDRequired
	}

	card, err := a.UpdateCard(ctx, cardID, CardFields{ListID: &listID})
	if err != nil {
		return nil, err
	}

	slog.Debug("moved card", "card", cardID, "list", listID)
	return card, nil
}

// AddComment posts a comment on a card.
func (a *TrelloAdapter) AddComment(ctx context.Context, cardID, text string) (*Comment, error) {
	if cardID == "" {
		return nil, ErrCardIDRequired
	}
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	body := map[string]string{"text": text}

	var tc trelloComment
	if err := a.client.Post(ctx, "/1/cards/"+cardID+"/actions/comments", body, &tc); err != nil {
		if taskhttp.IsNotFound(err) {
			return nil, fmt.Errorf("card %s: %w", cardID, ErrCardNotFound)
		}
		return nil, err
	}

	comment := &Comment{
		ID:     tc.ID,
		CardID: tc.Data.Card.ID,
		Text:   tc.Data.Text,
		Date:   tc.Date,
	}
	if comment.CardID == "" {
		comment.CardID = cardID
	}

	return comment, nil
}

// ListBoards returns the boards visible to the authenticated member.
func (a *TrelloAdapter) ListBoards(ctx context.Context) ([]Board, error) {
	var raw []trelloBoard
	if err := a.client.Get(ctx, "/1/members/me/boards", &raw); err != nil {
		return nil, err
	}

	boards := make([]Board, 0, len(raw))
	for _, tb := range raw {
		boards = append(boards, Board{
			ID:     tb.ID,
			Name:   tb.Name,
			URL:    tb.URL,
			Closed: tb.Closed,
		})
	}
	return boards, nil
}

// ListLists returns the lists on a board.
func (a *TrelloAdapter) ListLists(ctx context.Context, boardID string) ([]List, error) {
	if boardID == "" {
		return nil, ErrBoardIDRequired
	}

	var raw []trelloList
	if err := a.client.Get(ctx, "/1/boards/"+boardID+"/lists", &raw); err != nil {
		if taskhttp.IsNotFound(err) {
			return nil, fmt.Errorf("board %s: %w", boardID, ErrBoardNotFound)
		}
		return nil, err
	}

	lists := make([]List, 0, len(raw))
	for _, tl := range raw {
		lists = append(lists, List{
			ID:      tl.ID,
			Name:    tl.Name,
			BoardID: tl.IDBoard,
			Closed:  tl.Closed,
		})
	}
	return lists, nil
}

// ListCards returns all cards in a list. Trello pages cards newest
// first using a "before" card id cursor.
func (a *TrelloAdapter) ListCards(ctx context.Context, listID string) ([]Card, error) {
	if listID == "" {
		return nil, ErrListIDRequired
	}

	fetch := func(ctx context.Context, cursor string) ([]Card, string, error) {
		path := fmt.Sprintf("/1/lists/%s/cards?limit=%d", listID, listCardsPageSize)
		if cursor != "" {
			path += "&before=" + cursor
		}

		var raw []trelloCard
		if err := a.client.Get(ctx, path, &raw); err != nil {
			if taskhttp.IsNotFound(err) {
				return nil, "", fmt.Errorf("list %s: %w", listID, ErrListNotFound)
			}
			return nil, "", err
		}

		cards := make([]Card, 0, len(raw))
		for i := range raw {
			cards = append(cards, *cardFromTrello(&raw[i]))
		}

		next := ""
		if len(raw) == listCardsPageSize {
			next = raw[len(raw)-1].ID
		}
		return cards, next, nil
	}

	return taskhttp.Collect(ctx, fetch, 0)
}

func cardFromTrello(tc *trelloCard) *Card {
	card := &Card{
		ID:      tc.ID,
		Name:    tc.Name,
		Desc:    tc.Desc,
		URL:     tc.URL,
		ListID:  tc.IDList,
		BoardID: tc.IDBoard,
		Closed:  tc.Closed,
		Due:     tc.Due,
		Members: tc.IDMembers,
	}
	for _, label := range tc.Labels {
		card.Labels = append(card.Labels, label.Name)
	}
	return card
}
