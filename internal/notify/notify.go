// Package notify delivers session boundary notifications.
package notify

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
)

// Notifier delivers a notification.
type Notifier interface {
	Notify(title, body string) error
}

// Chain tries each notifier in order until one succeeds.
type Chain struct {
	notifiers []Notifier
	logger    *slog.Logger
}

// NewChain creates a Chain. Nil notifiers are skipped.
func NewChain(logger *slog.Logger, notifiers ...Notifier) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	chain := &Chain{logger: logger}
	for _, notifier := range notifiers {
		if notifier != nil {
			chain.notifiers = append(chain.notifiers, notifier)
		}
	}
	return chain
}

// Notify returns nil as soon as one notifier succeeds, and the joined
// errors of all of them otherwise.
func (chain *Chain) Notify(title, body string) error {
	var errs []error
	for index, notifier := range chain.notifiers {
		err := notifier.Notify(title, body)
		if err == nil {
			return nil
		}
		chain.logger.Debug("notifier failed, trying next", "position", index, "error", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("all notifiers failed: %w", errors.Join(errs...))
}

// FyneNotifier sends notifications through the fyne application.
type FyneNotifier struct {
	app fyne.App
}

// NewFyneNotifier wraps app.
func NewFyneNotifier(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app}
}

func (notifier *FyneNotifier) Notify(title, body string) error {
	if notifier.app == nil {
		return errors.New("no fyne app")
	}
	notification := fyne.NewNotification(title, body)
	fyne.Do(func() {
		notifier.app.SendNotification(notification)
	})
	return nil
}

// LogNotifier writes notifications to the log. It never fails.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (notifier *LogNotifier) Notify(title, body string) error {
	notifier.logger.Info("notification", "title", title, "body", body)
	return nil
}

// Func adapts a function to Notifier.
type Func func(title, body string) error

func (fn Func) Notify(title, body string) error {
	return fn(title, body)
}
