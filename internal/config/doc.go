// Package config loads docsearch configuration with viper.
//
// Values come from, in order of precedence: command line flags bound with
// BindRegisteredFlags, DOCSEARCH_* environment variables, a config.toml
// file, and the defaults of NewDefaultConfig.
//
// # Basic Usage
//
//	v, err := config.InitViper(configFile)
//	if err != nil {
//	    return err
//	}
//	config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagLimit})
//	cfg, err := config.Load(v)
//
// # File Format
//
//	[embedding]
//	provider = "local"      # local, jina or openai (detected when empty)
//	mode = "inprocess"      # inprocess or worker
//
//	[cache]
//	backend = "fs"          # fs, sqlite, memory or none
//	dir = "~/.cache/docsearch"
//
//	[index]
//	extractor = "auto"      # auto, html, markdown or none
//
//	[search]
//	mode = "hybrid"         # hybrid, keyword or embeddings
//	min_score = 0.3
//	limit = 5
//
// Nested keys map to environment variables by upper-casing and replacing dots
// with underscores: search.min_score is DOCSEARCH_SEARCH_MIN_SCORE. List
// values such as embedding.worker_command are comma separated in the
// environment.
package config
