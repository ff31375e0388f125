package editor

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MrSnakeDoc/startpage/internal/configstore"
	"github.com/MrSnakeDoc/startpage/internal/domain"
	"github.com/MrSnakeDoc/startpage/internal/logger"
)

// Redirect targets after a submission.
const (
	PathPage   = "/"
	PathEditor = "/editor"
)

// Store is the part of the config store the editor drives.
// Plans run under the store's lock against the document they are applied to.
type Store interface {
	Update(plan configstore.PlanFunc) error
	CommitUpdate(ctx context.Context, plan configstore.PlanFunc) error
}

// Editor applies editor form submissions to a Store.
type Editor struct {
	store  Store
	logger logger.Logger
}

// New creates an Editor.
func New(s Store, log logger.Logger) *Editor {
	return &Editor{store: s, logger: log}
}

// Submit applies one form submission and returns where the browser goes next.
//
// Field edits are always applied before the button's own action. Only Save persists;
// it also copies the top-level settings. Close keeps in-memory edits but writes nothing.
func (e *Editor) Submit(ctx context.Context, form url.Values) (string, error) {
	_, cmd, err := ParseButton(form.Get(FieldAction))
	if err != nil {
		return PathEditor, err
	}

	// The form is diffed against the document inside the store's lock.
	var sub Submission
	plan := func(doc *domain.Configuration) ([]domain.Action, error) {
		parsed, err := ParseForm(form, doc)
		if err != nil {
			return nil, err
		}
		sub = parsed
		if sub.Command == CommandSave {
			return append(sub.Actions(), sub.Settings), nil
		}
		return sub.Actions(), nil
	}

	switch cmd {
	case CommandSave:
		if err := e.store.CommitUpdate(ctx, plan); err != nil {
			return PathEditor, fmt.Errorf("failed to save configuration: %w", err)
		}
		e.logger.Info("configuration saved", logger.Int("edits", len(sub.Edits)))
		return PathPage, nil

	case CommandClose:
		if err := e.store.Update(plan); err != nil {
			return PathEditor, err
		}
		return PathPage, nil

	default:
		if err := e.store.Update(plan); err != nil {
			return PathEditor, err
		}
		if sub.Action != nil {
			e.logger.Debug("editor action applied",
				logger.String("kind", string(sub.Action.Kind)),
				logger.Int("edits", len(sub.Edits)))
		}
		return PathEditor, nil
	}
}
