// Package board provides task board integration for workflow
// automation. The Adapter interface abstracts board operations (cards,
// lists, comments) so orchestration code stays decoupled from any
// particular service; TrelloAdapter implements it against the Trello
// REST API, and webhook helpers validate and parse incoming board
// callbacks.
package board
