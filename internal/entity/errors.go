package entity

import "errors"

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrAlreadyDelivered = errors.New("lead already delivered")
)
