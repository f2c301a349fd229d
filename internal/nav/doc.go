// Package nav tracks which screen is shown, which widget has focus, and
// which modal overlay (if any) captures input.
//
// Stack never drops below its root route. Every legal change is listed in a
// single transition table keyed by screen, focus and event; anything else is
// a no-op. Overlay is orthogonal to the stack and is consulted first by the
// key router.
package nav
