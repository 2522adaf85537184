//go:build noebiten

package gradient

import "context"

// runWindow falls back to the headless host in noebiten builds.
func (a *animator) runWindow(ctx context.Context) {
	a.logger.Warn("built without window support, running headless")
	a.runHeadless(ctx)
}
