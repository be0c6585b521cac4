package styles

// DefaultThemeName is used when the configured theme is unknown.
const DefaultThemeName = "ember"

// NewEmberTheme creates the default warm theme.
func NewEmberTheme() *Theme {
	return &Theme{
		Name:   "ember",
		IsDark: true,

		Primary: ParseHex("#C0392B"), // Fire red
		Accent:  ParseHex("#F39C12"), // Golden orange

		BgBase:   ParseHex("#2C3E50"), // Slate gray base
		BgSubtle: ParseHex("#3D566E"),

		FgBase:     ParseHex("#f5f6fa"),
		FgMuted:    ParseHex("#a0a0a0"),
		FgSubtle:   ParseHex("#6F6F70"),
		FgInverted: ParseHex("#1e1e1e"),

		Border:      ParseHex("#5D6D7E"),
		BorderFocus: ParseHex("#F39C12"),

		Success: ParseHex("#27AE60"),
		Error:   ParseHex("#E74C3C"),
		Warning: ParseHex("#F39C12"),
		Info:    ParseHex("#3498DB"),
	}
}

// NewSlateTheme creates a cool dark theme.
func NewSlateTheme() *Theme {
	return &Theme{
		Name:   "slate",
		IsDark: true,

		Primary: ParseHex("#60a5fa"), // Sky blue
		Accent:  ParseHex("#34d399"), // Emerald

		BgBase:   ParseHex("#0f172a"), // Slate 900
		BgSubtle: ParseHex("#334155"), // Slate 700

		FgBase:     ParseHex("#f8fafc"),
		FgMuted:    ParseHex("#cbd5e1"),
		FgSubtle:   ParseHex("#94a3b8"),
		FgInverted: ParseHex("#0f172a"),

		Border:      ParseHex("#334155"),
		BorderFocus: ParseHex("#60a5fa"),

		Success: ParseHex("#22c55e"),
		Error:   ParseHex("#ef4444"),
		Warning: ParseHex("#f59e0b"),
		Info:    ParseHex("#3b82f6"),
	}
}
