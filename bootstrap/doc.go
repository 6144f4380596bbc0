// Package bootstrap runs the process: typed config, the component
// registry, a startup summary and graceful shutdown on SIGINT or SIGTERM.
//
//	app, err := bootstrap.NewApp(cfg)
//	_ = app.RegisterComponent(srv)
//	err = app.Run(ctx)
package bootstrap
