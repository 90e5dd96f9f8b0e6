package coachapimodels

import (
	apimodels "cvforge-backend/models/api"
)

type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

type Message struct {
	From Sender `json:"from"`
	Text string `json:"text"`
}

type SessionView struct {
	ID       string    `json:"id"`
	Role     string    `json:"role"`     // target role, informational only
	Messages []Message `json:"messages"` // transcript, append only
}

type SubmitRequest struct {
	Text string `json:"text" validate:"max=4000"`
}

func (r SubmitRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RoleRequest struct {
	Role string `json:"role" validate:"max=200"`
}

func (r RoleRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type SampleQuestion struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`    // button label
	Question string `json:"question"` // text submitted on click
}
