/*
Package ports defines the driven ports (interfaces) of the MindBuffer engine.

These interfaces decouple the rescue flow from external implementations, allowing
the engine to work with various content backends, key-value stores and settings
sources.

# Key Interfaces

  - ContentGenerator: Produces lenses, micro-actions, chat lines and emotion labels.
  - Completer: Sends one chat-completion request to a remote language model.
  - KVStore: Persists opaque values by key (memory, Redis, SQLite).
  - SessionArchive: Append-only store of finished sessions.
  - SettingsProvider: Supplies the read-only UserSettings.
  - DistributedLocker: Coordinates the single active flow across processes.
*/
package ports
