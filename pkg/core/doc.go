// Package core is the bootstrap of simreg.
//
// Entity declarations are scattered across packages and only queue
// registration actions from their init functions. Nothing is registered
// until Initialize runs the startup queue, which must happen at the very
// start of main, before any name is looked up. Once the queue has drained
// every registry is sealed and from then on only read.
//
// A failure while registering is fatal: MustInitialize logs it and exits,
// since a run missing one of its declared types cannot be configured.
package core
