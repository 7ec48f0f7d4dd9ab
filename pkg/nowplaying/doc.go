// Package nowplaying holds the normalized "now playing" record shared by every
// acquisition strategy, plus small helpers for turning raw metadata lines into
// records.
package nowplaying
