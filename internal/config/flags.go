package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag that maps to a config key
type Flag struct {
	// Name is the long flag name (e.g. "limit")
	Name string

	// Shorthand is the one-letter short flag. Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "search.limit")
	ViperKey string

	// Description is the help text shown in --help output
	Description string
}

// FlagSet is a mapping of registry keys to flag definitions
type FlagSet map[string]Flag

// Flag registry keys
const (
	FlagLimit             = "limit"
	FlagSearchMode        = "search-mode"
	FlagCacheBackend      = "cache-backend"
	FlagCacheDir          = "cache-dir"
	FlagExtractor         = "extractor"
	FlagEmbeddingProvider = "embedding-provider"
	FlagEmbeddingMode     = "embedding-mode"
	FlagEmbeddingModel    = "embedding-model"
	FlagWorkers           = "workers"
)

// Flags are the config-backed flags shared by docsearch commands
var Flags = FlagSet{
	FlagLimit: {
		Name:        "limit",
		Shorthand:   "n",
		ViperKey:    "search.limit",
		Description: "Maximum number of results to print",
	},
	FlagSearchMode: {
		Name:        "search-mode",
		ViperKey:    "search.mode",
		Description: "Search methods to run: hybrid, keyword or embeddings",
	},
	FlagCacheBackend: {
		Name:        "cache-backend",
		ViperKey:    "cache.backend",
		Description: "Cache store: fs, sqlite, memory or none",
	},
	FlagCacheDir: {
		Name:        "cache-dir",
		ViperKey:    "cache.dir",
		Description: "Directory for the fs and sqlite cache stores",
	},
	FlagExtractor: {
		Name:        "extractor",
		ViperKey:    "index.extractor",
		Description: "Content extractor: auto, html, markdown or none",
	},
	FlagEmbeddingProvider: {
		Name:        "embedding-provider",
		ViperKey:    "embedding.provider",
		Description: "Embedding provider: local, jina or openai",
	},
	FlagEmbeddingMode: {
		Name:        "embedding-mode",
		ViperKey:    "embedding.mode",
		Description: "Where embeddings are computed: inprocess or worker",
	},
	FlagEmbeddingModel: {
		Name:        "embedding-model",
		ViperKey:    "embedding.model",
		Description: "Embedding model name (provider default when empty)",
	},
	FlagWorkers: {
		Name:        "workers",
		ViperKey:    "index.workers",
		Description: "Number of docs indexed concurrently (0 for one per CPU)",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddIntFlag registers an int flag on cmd from the given FlagSet
func AddIntFlag(cmd *cobra.Command, fs FlagSet, key string, target *int) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetInt(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().IntVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Only flags set on the command line take precedence
// over env and config file values.
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, keys []string) {
	for _, key := range keys {
		def, ok := fs[key]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}
