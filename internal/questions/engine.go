// Package questions generates audit checklist questions for a document.
package questions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/models"
)

// Provider is the generative-text backend.
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Engine struct {
	provider Provider
	timeout  time.Duration
}

// NewEngine wraps provider; a zero timeout leaves the caller's context as is.
func NewEngine(provider Provider, timeout time.Duration) *Engine {
	return &Engine{provider: provider, timeout: timeout}
}

// Generate never fails: when the provider is unusable the fallback set for
// standard is returned instead.
func (e *Engine) Generate(ctx context.Context, documentText string, standard models.Standard) []string {
	qs, err := e.ask(ctx, documentText, standard)
	if err != nil {
		log.Printf("question generation for %s fell back to template: %v", standard, err)
		return Fallback(standard)
	}
	return qs
}

func (e *Engine) ask(ctx context.Context, documentText string, standard models.Standard) (qs []string, err error) {
	if e.provider == nil {
		return nil, apperr.New(apperr.KindProviderFailure, "no text provider configured")
	}

	defer func() {
		if r := recover(); r != nil {
			qs = nil
			err = apperr.Wrap(apperr.KindProviderFailure, fmt.Errorf("%v", r), "provider panicked")
		}
	}()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	response, err := e.provider.GenerateText(ctx, BuildPrompt(documentText, standard))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProviderFailure, err, "provider call failed")
	}

	qs = Parse(response)
	if len(qs) == 0 {
		return nil, apperr.Wrap(apperr.KindProviderFailure, errors.New("no questions in response"), "malformed provider response")
	}
	return qs, nil
}
