// Package pairing is the engine that decides which videos belong to which
// photos. It offers three interchangeable strategies — positional order,
// time-tolerance windows, and image similarity with greedy 1:N assignment —
// and a single sequence assigner that mints the ordinals downstream naming
// relies on.
//
// The engine holds no state between runs. Every invocation scans, matches,
// and numbers from scratch, so an operator who reorders the inputs and runs
// again gets a freshly computed result.
//
// The winner-take-all video assignment in image mode is greedy per video and
// deliberately not a maximum bipartite matching. Replacing it with an
// augmenting-path assignment would change observable output and is out of
// bounds without an explicit mode for it.
package pairing
