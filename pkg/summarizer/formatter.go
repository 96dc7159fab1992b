package summarizer

// Formatter renders a Summary into a human-readable document.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a plain function to the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements Formatter.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}
