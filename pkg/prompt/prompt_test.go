package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestTranslateSurveyErr(t *testing.T) {
	if got := translateSurveyErr(fmt.Errorf("ask: %w", terminal.InterruptErr)); !errors.Is(got, ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted, got %v", got)
	}
	other := errors.New("eof")
	if got := translateSurveyErr(other); got != other {
		t.Fatalf("other errors must pass through, got %v", got)
	}
}

func TestSurveyHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Survey().Confirm(ctx, ConfirmConfig{Message: "regenerate?"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConfirmFunc(t *testing.T) {
	var seen ConfirmConfig
	c := ConfirmFunc(func(_ context.Context, cfg ConfirmConfig) (bool, error) {
		seen = cfg
		return true, nil
	})
	ok, err := c.Confirm(context.Background(), ConfirmConfig{Message: "m", Default: true})
	if err != nil || !ok {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
	if seen.Message != "m" || !seen.Default {
		t.Fatalf("config not forwarded: %+v", seen)
	}
}
