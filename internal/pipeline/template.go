package pipeline

import (
	"regexp"
	"strings"
)

// Template is a prompt body with {name} placeholders and the declared
// set of inputs those placeholders draw from. Declared inputs and
// referenced placeholders must match exactly; New checks this so Render
// never meets an unknown placeholder in a validated pipeline.
type Template struct {
	Inputs []string `yaml:"inputs"`
	Body   string   `yaml:"template"`
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholders returns the unique placeholder names referenced in the
// body, in order of first appearance.
func (t Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(t.Body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// problems returns one message per declared/referenced mismatch.
func (t Template) problems() []string {
	referenced := make(map[string]bool)
	for _, name := range t.Placeholders() {
		referenced[name] = true
	}
	declared := make(map[string]bool, len(t.Inputs))
	var probs []string
	for _, name := range t.Inputs {
		declared[name] = true
		if !referenced[name] {
			probs = append(probs, "declared input "+quoted(name)+" is never referenced in the template")
		}
	}
	for _, name := range t.Placeholders() {
		if !declared[name] {
			probs = append(probs, "template references "+quoted(name)+" which is not a declared input")
		}
	}
	return probs
}

// Render substitutes every placeholder with its value from scratch.
// A declared input absent from scratch yields a MissingInputError;
// with construction-time validation in place that indicates a bug, not
// a normal run failure.
func (t Template) Render(scratch map[string]string) (string, error) {
	for _, name := range t.Inputs {
		if _, ok := scratch[name]; !ok {
			return "", &MissingInputError{Key: name}
		}
	}
	out := placeholderRe.ReplaceAllStringFunc(t.Body, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := scratch[name]; ok {
			return v
		}
		return m
	})
	return out, nil
}

func quoted(s string) string { return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"` }
