// Package app runs a blit application: a platform supplies time, window
// size and input, a backend renders, and the loop calls the configured
// callbacks at a fixed update rate with exactly one render per frame.
//
//	cfg := app.DefaultConfig()
//	cfg.Name = "demo"
//	cfg.OnRender = func(a *app.App) {
//		a.Graphics.Clear(blit.Black)
//	}
//	err := app.Run(cfg, app.NewHeadless(app.WithMaxFrames(60)), nil)
//
// Updates run in fixed steps of one second over TargetFramerate. When a
// frame falls behind, at most MaxUpdates steps run and the rest of the
// accumulated time is dropped. Time.PauseFor swallows whole steps and
// ends with one partial step so game time resumes exactly at the end of
// the pause.
package app
