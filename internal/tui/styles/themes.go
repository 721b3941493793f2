package styles

// DefaultThemeName is used when no theme is configured
const DefaultThemeName = "webui"

// NewWebUITheme creates the default theme: warm orange on slate
func NewWebUITheme() *Theme {
	return &Theme{
		Name:   "webui",
		IsDark: true,

		// Brand colors
		Primary:   ParseHex("#E67E22"), // Orange
		Secondary: ParseHex("#F4D03F"), // Bright yellow
		Accent:    ParseHex("#F39C12"), // Golden orange

		// Background colors - slate gray theme
		BgBase:    ParseHex("#2C3E50"), // Slate gray base
		BgSubtle:  ParseHex("#3D566E"), // Subtle contrast
		BgOverlay: ParseHex("#4A6278"), // For overlays

		// Foreground colors
		FgBase:     ParseHex("#f5f6fa"), // Lynx white
		FgMuted:    ParseHex("#a0a0a0"), // Muted text
		FgSubtle:   ParseHex("#6F6F70"), // Subtle text
		FgInverted: ParseHex("#1e1e1e"), // For light backgrounds

		// Border colors
		Border:      ParseHex("#5D6D7E"),
		BorderFocus: ParseHex("#F39C12"),

		// Semantic colors
		Success: ParseHex("#27AE60"), // Emerald green
		Error:   ParseHex("#E74C3C"), // Bright red
		Warning: ParseHex("#F39C12"), // Orange (matches accent)
		Info:    ParseHex("#3498DB"), // Sky blue
	}
}

// NewDarkTheme creates a cool blue dark theme
func NewDarkTheme() *Theme {
	return &Theme{
		Name:   "dark",
		IsDark: true,

		// Brand colors
		Primary:   ParseHex("#60a5fa"), // Sky blue
		Secondary: ParseHex("#a78bfa"), // Violet
		Accent:    ParseHex("#34d399"), // Emerald

		// Background colors
		BgBase:    ParseHex("#0f172a"), // Slate 900
		BgSubtle:  ParseHex("#334155"), // Slate 700
		BgOverlay: ParseHex("#475569"), // Slate 600

		// Foreground colors
		FgBase:     ParseHex("#f8fafc"), // Slate 50
		FgMuted:    ParseHex("#cbd5e1"), // Slate 300
		FgSubtle:   ParseHex("#94a3b8"), // Slate 400
		FgInverted: ParseHex("#0f172a"), // Slate 900

		// Border colors
		Border:      ParseHex("#334155"), // Slate 700
		BorderFocus: ParseHex("#60a5fa"), // Sky 400

		// Semantic colors
		Success: ParseHex("#34d399"), // Emerald 400
		Error:   ParseHex("#f87171"), // Red 400
		Warning: ParseHex("#fbbf24"), // Amber 400
		Info:    ParseHex("#60a5fa"), // Sky 400
	}
}
