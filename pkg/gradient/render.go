//go:build !noebiten

package gradient

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/opd-ai/go-gradient/internal/render"
)

// runWindow runs the Ebiten window loop. It blocks until the window is
// closed or ctx is cancelled.
func (a *animator) runWindow(ctx context.Context) {
	a.mu.RLock()
	cfg, comp, v := a.cfg, a.compositor, a.view
	a.mu.RUnlock()

	rc, err := a.renderConfig(cfg)
	if err != nil {
		a.notifyError(ErrorCategoryConfig, err)
		return
	}

	game := render.NewGame(rc, comp)
	game.SetContext(ctx)
	game.SetLogger(slogFor(a.logger))
	game.SetLayoutHandler(func(w, h int) { v.Layout(image.Rect(0, 0, w, h)) })
	game.SetToggleHandler(v.Toggle)
	game.SetErrorHandler(func(err error) {
		a.notifyError(ErrorCategoryRender, fmt.Errorf("update error: %w", err))
	})

	a.mu.Lock()
	a.game = game
	a.mu.Unlock()

	if err := game.Run(); err != nil && !errors.Is(err, render.ErrGameTerminated) {
		a.notifyError(ErrorCategoryRender, fmt.Errorf("render loop error: %w", err))
	}
}
