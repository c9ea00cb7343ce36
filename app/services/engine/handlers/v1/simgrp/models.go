package simgrp

import "github.com/chainlab/classroom/business/sys/validate"

// command is the envelope every inbound websocket message carries.
type command struct {
	Action string `json:"action"`
}

// joinCommand is the payload for the join action.
type joinCommand struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=32"`
	Role     string `json:"role" validate:"required,oneof=user miner"`
}

// Validate checks the payload against its declared tags.
func (c joinCommand) Validate() error {
	return validate.Check(c)
}

// submitCommand is the payload for the submit-transaction action.
type submitCommand struct {
	To     string  `json:"to" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
	Fee    float64 `json:"fee" validate:"gte=0"`
}

// Validate checks the payload against its declared tags.
func (c submitCommand) Validate() error {
	return validate.Check(c)
}

// ackError is the unicast payload reporting a failed command.
type ackError struct {
	Message string `json:"message"`
}
