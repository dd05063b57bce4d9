// Package tui wraps the interactive terminal prompts. All prompts
// share one contract: a dismissed prompt returns nil without an
// error, so callers can tell "chose nothing" from "prompt broke".
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	uerror "stnb.cc/smam/util/error"
)

// Select asks the user to pick one of items.
func Select(ctx context.Context, title string, items []string) (*string, error) {
	var choice string
	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(items...)...).
		Value(&choice)
	err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil, nil
	}
	if err != nil {
		return nil, uerror.WithStackTrace(err)
	}
	return &choice, nil
}

// Input asks the user for a line of text. A validate function is
// applied live while typing.
func Input(ctx context.Context, title string, placeholder string, validate func(string) error) (*string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil, nil
	}
	if err != nil {
		return nil, uerror.WithStackTrace(err)
	}
	return &value, nil
}

// Confirm asks a yes/no question.
func Confirm(ctx context.Context, title string, defaultYes bool) (*bool, error) {
	value := defaultYes
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil, nil
	}
	if err != nil {
		return nil, uerror.WithStackTrace(err)
	}
	return &value, nil
}
