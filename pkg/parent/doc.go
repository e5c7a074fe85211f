// Package parent implements the parent zone: calm-down statistics and a
// daily one-line journal classified by emotion.
//
// Statistics are plain values updated by pure functions; StatsStore only
// loads and saves them.
package parent
