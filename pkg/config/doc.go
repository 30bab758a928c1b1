// Package config loads host configuration for fomod: the game version,
// initial flags and the file states used to answer file dependencies.
//
// Layers are merged lowest first:
//
//  1. embedded defaults
//  2. $XDG_CONFIG_HOME/fomod/config.toml
//  3. an explicit file (--config)
//  4. FOMOD_* environment variables (FOMOD_GAME_VERSION -> game.version)
//  5. overrides from command line flags
package config
