// Package playback drives caption lookups from a media clock.
//
// The Engine owns the active timeline index and publishes it atomically after
// a successful parse, so a tick never sees a half-built or mixed index. Ticks
// feed an Idle/Active tracker and only transitions reach the Presenter.
package playback
