package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets a translation function for report labels.
func WithTranslator(translator func(key string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translator = translator
	}
}

// WithVersion sets the tool version shown in the header.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// MarkdownFormatter formats a Summary as a markdown document.
type MarkdownFormatter struct {
	translator func(key string) string
	version    string
}

// NewMarkdownFormatter creates a MarkdownFormatter with the given options.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translator: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts a Summary to a markdown document.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translator
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Assembly Summary"))
	if f.version != "" {
		fmt.Fprintf(&b, "%s: %s (%s)\n\n", t("Generated"),
			summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"), f.version)
	} else {
		fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"),
			summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Input"))
	fmt.Fprintf(&b, "- %s: %d\n", t("Records"), summary.Input.RecordCount)
	if summary.Input.DuplicateCount > 0 {
		fmt.Fprintf(&b, "- %s: %d\n", t("Duplicate indexes"), summary.Input.DuplicateCount)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Codec"), summary.Settings.Codec)
	if summary.Settings.Bitrate > 0 {
		fmt.Fprintf(&b, "- %s: %d kbps\n", t("Bitrate"), summary.Settings.Bitrate)
	} else {
		fmt.Fprintf(&b, "- %s: %d\n", t("Quality"), summary.Settings.Quality)
	}
	fmt.Fprintf(&b, "- %s: %.1f fps\n", t("Frame rate"), summary.Settings.FrameRate)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Video"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Output"), summary.Video.OutputPath)
	fmt.Fprintf(&b, "- %s: %d\n", t("Frames"), summary.Video.FrameCount)
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Duration"), summary.Video.DurationMs)
	fmt.Fprintf(&b, "- %s: %s\n", t("Size"), formatBytes(summary.Video.FileSize))
	fmt.Fprintf(&b, "- %s: %dx%d\n", t("Dimensions"), summary.Video.Width, summary.Video.Height)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Timing"))
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Total"), summary.Timing.TotalDurationMs)

	return b.String()
}

// formatBytes renders a byte count with binary unit prefixes.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
