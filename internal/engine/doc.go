// Package engine orchestrates lazy component activation: an initial full
// scan plus a live mutation watcher discover marked elements, each element's
// strategy expression resolves into a composite readiness gate, the
// single-flight loader fetches the component's module once per name, and the
// activator hands the element back to the host framework.
//
// Ordering is strict within one instance — gates, then load, then activate —
// and deliberately unordered across instances.
package engine
