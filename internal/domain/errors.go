package domain

import "errors"

var (
	// ErrTemplateNotFound indicates the requested template id is not in the catalog.
	ErrTemplateNotFound = errors.New("quiz template not found")
	// ErrRoundTypeNotFound indicates a template referenced a round type absent from the catalog.
	ErrRoundTypeNotFound = errors.New("round type not found")
	// ErrRoundNotFound indicates a round-number edit targeted a round that is not in the list.
	ErrRoundNotFound = errors.New("round not found in configuration")
	// ErrUnknownBreakStrategy indicates a caller asked for a break placement mode that does not exist.
	ErrUnknownBreakStrategy = errors.New("unknown break strategy")
)
