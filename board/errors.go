package board

import "errors"

// Configuration errors.
var (
	ErrConfigKeyRequired   = errors.New("trello api key is required")
	ErrConfigTokenRequired = errors.New("trello api token is required")
)

// Card errors.
var (
	ErrCardNotFound   = errors.New("card not found")
	ErrCardIDRequired = errors.New("card id is required")
	ErrListIDRequired = errors.New("list id is required")
	ErrNameRequired   = errors.New("card name is required")
)

// List and board errors.
var (
	ErrListNotFound    = errors.New("list not found")
	ErrBoardNotFound   = errors.New("board not found")
	ErrBoardIDRequired = errors.New("board id is required")
)

// Comment errors.
var (
	ErrCommentTextRequired = errors.New("comment text is required")
)

// Webhook errors.
var (
	ErrWebhookInvalidSignature = errors.New("invalid webhook signature")
	ErrWebhookInvalidPayload   = errors.New("invalid webhook payload")
)
