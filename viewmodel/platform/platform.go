// Package platform owns the process-wide install-prompt state. The
// application core depends on this narrow interface, never on an ambient
// global.
package platform

import (
	"context"
	"errors"
	"sync"
)

type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeDismissed Outcome = "dismissed"
)

var ErrNotInstallable = errors.New("no install prompt available")

var (
	mu     sync.Mutex
	prompt func(context.Context) (Outcome, error)
)

// SetPrompt stashes the platform's deferred install prompt. Passing nil
// clears it, e.g. after the app was installed.
func SetPrompt(fn func(context.Context) (Outcome, error)) {
	mu.Lock()
	defer mu.Unlock()
	prompt = fn
}

func IsInstallable() bool {
	mu.Lock()
	defer mu.Unlock()
	return prompt != nil
}

// PromptInstall shows the stashed prompt once and clears it; the platform
// only allows a single use per capture.
func PromptInstall(ctx context.Context) (Outcome, error) {
	mu.Lock()
	fn := prompt
	prompt = nil
	mu.Unlock()

	if fn == nil {
		return "", ErrNotInstallable
	}
	return fn(ctx)
}
