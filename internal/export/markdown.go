package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
)

// Options describes the session being exported.
type Options struct {
	AppName     string
	BundleID    string
	WindowTitle string
	Screen      *geom.Size
	Format      Format
}

// GenerateOutput renders annotations as the feedback document. Downstream
// agent tooling parses this layout, so field labels and their order are
// fixed.
func GenerateOutput(annotations []model.Annotation, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# UI Feedback: %s\n\n", opts.AppName)
	var header []string
	if opts.BundleID != "" {
		header = append(header, fmt.Sprintf("**Bundle ID:** %s", opts.BundleID))
	}
	if opts.WindowTitle != "" {
		header = append(header, fmt.Sprintf("**Window:** %s", opts.WindowTitle))
	}
	if opts.Screen != nil {
		header = append(header, fmt.Sprintf("**Screen:** %dx%d", int(opts.Screen.W), int(opts.Screen.H)))
	}
	if len(header) > 0 {
		b.WriteString(strings.Join(header, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString("---\n")

	if len(annotations) == 0 {
		b.WriteString("\nNo annotations.\n")
		return b.String()
	}
	for i, a := range annotations {
		b.WriteString("\n")
		writeSection(&b, i+1, a, opts.Format)
	}
	return b.String()
}

func writeSection(b *strings.Builder, n int, a model.Annotation, format Format) {
	el := a.Element
	fmt.Fprintf(b, "## %d. %s\n\n", n, ElementName(el.Role, el.Identifier, el.Title))

	if len(el.HierarchyPath) > 0 {
		fmt.Fprintf(b, "**Location:** %s\n", PathString(el.HierarchyPath))
	}
	if el.Identifier != "" {
		fmt.Fprintf(b, "**Identifier:** %s\n", codeSpan(el.Identifier))
	}
	if len(el.Siblings) > 0 {
		names := make([]string, len(el.Siblings))
		for i, s := range el.Siblings {
			names[i] = SiblingName(s)
		}
		fmt.Fprintf(b, "**Siblings:** %s\n", strings.Join(names, ", "))
	}
	if window := windowOf(a); window != "" {
		fmt.Fprintf(b, "**Window:** %s\n", window)
	}
	if format == FormatForensic {
		f := el.Frame.Ints()
		fmt.Fprintf(b, "**Frame:** x=%d y=%d w=%d h=%d\n", f[0], f[1], f[2], f[3])
		if el.WindowLevel != nil {
			fmt.Fprintf(b, "**Window Level:** %d\n", *el.WindowLevel)
		}
		fmt.Fprintf(b, "**Fingerprint:** %s\n", model.Fingerprint(el))
	}
	if patterns := SearchPatterns(el.Identifier, el.Title, el.Role); len(patterns) > 0 {
		b.WriteString("**Search Patterns:**\n")
		for _, p := range patterns {
			fmt.Fprintf(b, "- %s\n", codeSpan(p))
		}
	}
	if hint, ok := DisambiguationHint(a); ok {
		fmt.Fprintf(b, "**Disambiguation:** %s\n", hint)
	}
	if format == FormatForensic && len(el.AllAttributes) > 0 {
		b.WriteString("**Attributes:**\n")
		names := make([]string, 0, len(el.AllAttributes))
		for name := range el.AllAttributes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(b, "- %s: %s\n", name, el.AllAttributes[name])
		}
	}
	fmt.Fprintf(b, "\n**Feedback:** %s\n", a.Text)
}

// SessionWindow returns the window the annotations were made in: the first
// annotation's window title. It fills the document header when no explicit
// title was recorded.
func SessionWindow(annotations []model.Annotation) string {
	for _, a := range annotations {
		if w := windowOf(a); w != "" {
			return w
		}
	}
	return ""
}

func windowOf(a model.Annotation) string {
	if a.WindowTitle != "" {
		return a.WindowTitle
	}
	return a.Element.WindowTitle
}

// codeSpan wraps s in backticks, widening the fence when s itself contains
// a backtick.
func codeSpan(s string) string {
	if !strings.Contains(s, "`") {
		return "`" + s + "`"
	}
	return "`` " + s + " ``"
}
