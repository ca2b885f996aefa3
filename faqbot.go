// Package faqbot provides the command handlers of a group-chat FAQ bot.
// It searches documentation sites, forwards questions to a remote agent,
// and compiles typst snippets into images.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or the index format they read
// (e.g., http/, minisearch/, hiagent/).
package faqbot
