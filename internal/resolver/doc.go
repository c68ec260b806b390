// Package resolver maps a longitudinal coordinate to the element containing
// it and reads the optics at that element from an [optics.Engine].
//
// The resolver only indexes engine arrays; it never recomputes optics.
// Positions before the first active element resolve to the first element and
// positions past the end resolve to the last.
package resolver
