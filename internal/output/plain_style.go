package output

// PlainStyleProvider renders semantic types as plain prefixes.
type PlainStyleProvider struct{}

var plainProvider = PlainStyleProvider{}

// NewPlainStyleProvider creates a plain style provider.
func NewPlainStyleProvider() PlainStyleProvider {
	return plainProvider
}

// Style implements StyleProvider.
func (PlainStyleProvider) Style(semantic SemanticType) TextStyle {
	switch semantic {
	case SemanticSuccess:
		return prefixed("✓ ")
	case SemanticWarning:
		return prefixed("⚠ ")
	case SemanticError:
		return prefixed("✗ ")
	case SemanticInfo:
		return prefixed("ℹ ")
	case SemanticHighlight:
		return TextStyleFunc(func(text string) string { return "[" + text + "]" })
	default:
		return prefixed("")
	}
}

// IsAvailable implements StyleProvider.
func (PlainStyleProvider) IsAvailable() bool {
	return true
}

// MarkdownStyle implements StyleProvider.
func (PlainStyleProvider) MarkdownStyle() string {
	return "notty"
}

func prefixed(prefix string) TextStyle {
	return TextStyleFunc(func(text string) string {
		return prefix + text
	})
}
