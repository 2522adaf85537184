// Package gradient provides the public API for embedding the go-gradient
// animated gradient view. An Animator owns a compositor, the view that cycles
// through the configured frames and a host that ticks and draws them.
//
// # Basic Usage
//
//	a, err := gradient.New("/path/to/sunset.yaml", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer a.Stop()
//
//	if err := a.Start(); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration Sources
//
//   - Disk file: Use [New] to load a Lua or YAML file
//   - Embedded FS: Use [NewFromFS] to load from an [io/fs.FS]
//   - io.Reader: Use [NewFromReader] with [FormatLua] or [FormatYAML]
//
// Files loaded with [New] can be watched for changes with
// Options.WatchConfig; each change is applied with [Animator.ReloadConfig].
//
// # Hosts
//
// By default the view is drawn in an Ebiten window. Options.Terminal draws
// it in the terminal with half-block cells, and Options.Headless only ticks
// the animation, which suits tests and embedding:
//
//	a, _ := gradient.NewFromReader(cfg, gradient.FormatYAML, &gradient.Options{
//		Headless: true,
//	})
//	a.Start()
//	img, _ := a.Snapshot(ctx)
//
// # Error Handling
//
// Runtime errors are reported through [ErrorHandler] as *[CategorizedError]:
//
//	a.SetErrorHandler(func(err error) {
//		log.Printf("gradient error: %v", err)
//	})
//
// The handler is called asynchronously; do not block in the handler.
package gradient
