// Package mocks provides an in-memory otel.Otel that keeps every span it opens.
package mocks

import (
	"context"
	"sync"

	"roombook/infras/otel"
)

// Span is what a Recorder kept for one scope.
type Span struct {
	Scope      string
	Name       string
	Attributes map[string]any
	Events     []string
	Errors     []error
	Ended      bool
}

// Recorder implements otel.Otel without exporting anything.
type Recorder struct {
	mu    sync.Mutex
	spans []*Span
}

func NewOtel() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	span := &Span{Scope: scopeName, Name: spanName, Attributes: map[string]any{}}

	r.mu.Lock()
	r.spans = append(r.spans, span)
	r.mu.Unlock()

	return ctx, &scope{recorder: r, span: span}
}

// Spans returns a copy of every span opened so far, in order.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	spans := make([]Span, len(r.spans))
	for i, span := range r.spans {
		spans[i] = *span
	}

	return spans
}

// Find returns the first span with the given name.
func (r *Recorder) Find(name string) (Span, bool) {
	for _, span := range r.Spans() {
		if span.Name == name {
			return span, true
		}
	}

	return Span{}, false
}

type scope struct {
	recorder *Recorder
	span     *Span
}

func (s *scope) End() {
	s.recorder.mu.Lock()
	s.span.Ended = true
	s.recorder.mu.Unlock()
}

func (s *scope) TraceError(err error) {
	s.recorder.mu.Lock()
	s.span.Errors = append(s.span.Errors, err)
	s.recorder.mu.Unlock()
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(name string) {
	s.recorder.mu.Lock()
	s.span.Events = append(s.span.Events, name)
	s.recorder.mu.Unlock()
}

func (s *scope) SetAttribute(key string, value any) {
	s.recorder.mu.Lock()
	s.span.Attributes[key] = value
	s.recorder.mu.Unlock()
}

func (s *scope) SetAttributes(attributes map[string]any) {
	s.recorder.mu.Lock()
	for key, value := range attributes {
		s.span.Attributes[key] = value
	}
	s.recorder.mu.Unlock()
}
