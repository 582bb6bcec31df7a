/*
Package gallery implements the justified gallery layout and viewer engine
used by the portfolio website.

The engine is deliberately free of rendering concerns. It turns per-image
aspect ratios into exact pixel geometry (Layout), decides presentation order
so portrait and landscape images alternate pleasantly (Sequence), reconciles
computed geometry against long-lived cards across container resizes
(Reflower), tracks one-shot reveal transitions (RevealGate), and models the
full-screen viewer's navigation and gesture state (Viewer). Callers feed it
events: resize signals, scroll positions, key presses, and pointer drags.

All state lives in a Session owned by the caller. Nothing in this package
touches ambient globals, so several albums can be laid out side by side.
*/
package gallery
