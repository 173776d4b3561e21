// Package config provides the configuration system for onree.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← ONREE_*, highest priority
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/onree/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading
//   - watcher: fsnotify-based change notification for live reload
//
// # Basic Usage
//
//	cfg := config.New(config.WithPath(path))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	tabStop := cfg.Editor().TabStop
//
// Settings are addressed by dot-separated paths such as "editor.tabStop".
// Section accessors (Editor, UI, Logging, Grammars) return snapshot structs
// with defaults applied.
package config
