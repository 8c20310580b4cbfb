// Package game implements the rules of GoMemory: a memory-matching game where a
// "matrix" of cells keeps spreading over the board while the player looks for pairs.
//
// Everything in this package runs on a single logical thread: callbacks are serialized
// by the Scheduler given to the Session, so no locking is needed inside the package.
package game

// Version of the game.
// Bumping this number will eventually make clients reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart (the reload
// still only happens after the first page is loaded, so there is a delay).
// This is useful during development.
var Version = "v0.1.0"
