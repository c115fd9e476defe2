package model

import (
	"strings"
	"time"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Descriptor names one admin-managed collection and the columns the lifecycle touches.
type Descriptor struct {
	Name          string
	TableName     string
	FieldID       string
	FieldImageURL string
	ListPath      string
	CachePrefix   string
	ImageRequired bool
	// CreatedVerb overrides "created" in the create notice.
	CreatedVerb string
}

// Label is the lower-case name used inside error notices.
func (d Descriptor) Label() string {
	return strings.ToLower(d.Name)
}

func (d Descriptor) NotFoundMessage() string {
	return d.Name + " not found"
}

// SuccessMessage is the flash shown after a successful action.
func (d Descriptor) SuccessMessage(action string) string {
	if action == ActionCreated && d.CreatedVerb != "" {
		action = d.CreatedVerb
	}

	return d.Name + " " + action + " successfully"
}

// FailureMessage is the flash shown when action fails, e.g. "Error creating service: boom".
func (d Descriptor) FailureMessage(action string, err error) string {
	verb := map[string]string{
		ActionCreated: "creating",
		ActionUpdated: "updating",
		ActionDeleted: "deleting",
	}[action]

	msg := "Error " + verb + " " + d.Label()
	if err != nil {
		msg += ": " + err.Error()
	}

	return msg
}

// Entity is a record managed by the generic lifecycle.
type Entity interface {
	GetID() string
	GetImageURL() string
}

// Changes computes the columns to write for the record currently stored.
type Changes[T any] func(current T) map[string]any

type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// ChangeEvent is published after every successful write.
type ChangeEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}
