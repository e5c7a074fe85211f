/*
Package domain contains the core domain models of the MindBuffer rescue engine.

It defines the records a rescue session produces and consumes, such as the ABC
record, the generated lens and micro-action cards, the chat transcript and the
archived SessionData. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - ABCRecord: Activating event, Belief and emotional Consequence of an episode.
  - LensCard / MicroAction: Ephemeral generated content offered during a flow.
  - SessionData: The persisted unit, created only when a flow finishes.
  - UserSettings: Host supplied language, tone and AI provider configuration.
  - ParentStats / DailySentence: Parent zone records, updated by pure functions.
*/
package domain
