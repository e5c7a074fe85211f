/*
Package generator produces the generated content of a rescue flow: reframing
lenses, micro-actions, conversational bot lines and journal emotion labels.

Two strategies implement the same capability. The AI strategy calls a remote
chat-completion endpoint through a ports.Completer; the mock strategy selects
from static per-language template banks using a seeded pseudo-random function,
so the same seed always yields the same cards. The Generator picks a strategy
once per call from the user settings and silently falls back to the mock
strategy whenever the remote call fails.
*/
package generator
