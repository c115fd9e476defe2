// Package mocks provides a tracer that records nothing, for unit tests.
package mocks

import (
	"context"

	"curtainraiser/infras/otel"
)

type noopOtel struct{}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func NewOtel() otel.Otel {
	return noopOtel{}
}

type noopScope struct{}

func (noopScope) AddEvent(string)              {}
func (noopScope) End()                         {}
func (noopScope) SetAttribute(string, any)     {}
func (noopScope) SetAttributes(map[string]any) {}
func (noopScope) TraceError(error)             {}
func (noopScope) TraceIfError(error)           {}

func NewScope() otel.Scope {
	return noopScope{}
}
