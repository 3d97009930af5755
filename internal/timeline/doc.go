// Package timeline maps playback positions to caption entries.
//
// An Index is built once per parsed track and never mutated. Besides the
// interval lookup it keeps a whole-second bucket map keyed by each entry's
// truncated start time. The bucket map is lossy: when two entries start in
// the same second the one later in parse order replaces the earlier one.
package timeline
