package service

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrIncomplete   = errors.New("quotation is incomplete")
	ErrRender       = errors.New("document rendering failed")
)
