package pipeline

import "strings"

// contentSections maps content-pipeline output keys to their headings
// in the exported package, in render order.
var contentSections = []struct {
	key     string
	heading string
}{
	{"blog_post", "Blog Post"},
	{"summary", "Summary"},
	{"keywords", "SEO Keywords"},
	{"social_posts", "Social Media Posts"},
}

// ContentPackage renders the outputs of a content pipeline run as a
// single markdown document suitable for export.
func ContentPackage(topic string, outputs map[string]string) string {
	var sb strings.Builder
	sb.WriteString("# Content Package: ")
	sb.WriteString(topic)
	sb.WriteString("\n")
	for _, s := range contentSections {
		content, ok := outputs[s.key]
		if !ok {
			continue
		}
		sb.WriteString("\n## ")
		sb.WriteString(s.heading)
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(content))
		sb.WriteString("\n")
	}
	return sb.String()
}
