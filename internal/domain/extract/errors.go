package extract

import "errors"

// Sentinel kinds for extraction errors.
var (
	ErrParse = errors.New("parse event markup")
)
