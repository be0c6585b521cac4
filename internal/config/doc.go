// Package config provides local-first configuration for the fieldstate demo.
//
// Configuration is stored in the project's .fieldstate/ directory:
//
//	.fieldstate/
//	├── config.json        # Main configuration (committed to git)
//	├── .gitignore         # Keeps logs and drafts out of git
//	├── fieldstate.log     # TUI log output
//	└── draft.json         # Persisted username field snapshot
//
// A missing config.json is created with defaults on Load:
//
//	{
//	  "debounce_ms": 300,
//	  "min_username_length": 3,
//	  "theme": "ember",
//	  "debug": false,
//	  "log_file": ".fieldstate/fieldstate.log",
//	  "log_format": "text",
//	  "draft_file": ".fieldstate/draft.json"
//	}
//
// FIELDSTATE_* environment variables override file values, and a .env file in
// the project directory is loaded first. Path values may reference
// environment variables with $VAR or ${VAR}.
//
// Example usage:
//
//	manager := config.NewManager(".")
//	if err := manager.Load(); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("debounce:", manager.Get().Debounce())
//
//	// Update a setting
//	manager.Set("theme", "slate")
package config
