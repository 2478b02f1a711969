// Package actors ships the built-in Actor Node payload kinds spec.md §9
// recommends for the closed set of "in-tree" actors: "a tagged variant
// (one arm per built-in actor kind plus an adapted-foreign-payload arm)
// covers the closed set". Each kind implements actorsys.Dispatcher and is
// constructed independently of the actor tree, then registered via
// actorsys.NewNode/System.AddActor by the caller.
package actors
