package pipeline

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func step(output string, inputs ...string) Step {
	parts := make([]string, len(inputs))
	for i, in := range inputs {
		parts[i] = "{" + in + "}"
	}
	return Step{
		OutputKey: output,
		Template:  Template{Inputs: inputs, Body: "prompt for " + output + ": " + strings.Join(parts, " ")},
	}
}

// contentSteps mirrors the built-in content pipeline shape:
// blog_post(topic,tone,length) → summary(blog_post) → keywords(blog_post)
// → social_posts(blog_post,summary).
func contentSteps() []Step {
	return []Step{
		step("blog_post", "topic", "tone", "length"),
		step("summary", "blog_post"),
		step("keywords", "blog_post"),
		step("social_posts", "blog_post", "summary"),
	}
}

func TestNewValid(t *testing.T) {
	p, err := New("content", []string{"topic", "tone", "length"}, contentSteps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"blog_post", "summary", "keywords", "social_posts"}
	if !reflect.DeepEqual(p.OutputKeys(), want) {
		t.Errorf("OutputKeys() = %v, want %v", p.OutputKeys(), want)
	}
	if !reflect.DeepEqual(p.InputKeys(), []string{"topic", "tone", "length"}) {
		t.Errorf("InputKeys() = %v", p.InputKeys())
	}
}

func TestNewMissingDependency(t *testing.T) {
	// summary (step 1) references a key nothing produces.
	steps := []Step{
		step("blog_post", "topic"),
		step("summary", "missing_key"),
	}
	_, err := New("p", []string{"topic"}, steps)
	var cerr *ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
	if len(cerr.Problems) != 1 {
		t.Fatalf("expected 1 problem, got %v", cerr.Problems)
	}
	if !strings.Contains(cerr.Problems[0], "step 1") || !strings.Contains(cerr.Problems[0], `"missing_key"`) {
		t.Errorf("problem should name step 1 and the missing key: %q", cerr.Problems[0])
	}
}

func TestNewForwardReferenceRejected(t *testing.T) {
	// Declared order is the dependency order: a step may not read a
	// later step's output.
	steps := []Step{
		step("summary", "blog_post"),
		step("blog_post", "topic"),
	}
	_, err := New("p", []string{"topic"}, steps)
	var cerr *ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
}

func TestNewDuplicateOutputKey(t *testing.T) {
	steps := []Step{
		step("out", "topic"),
		step("out", "topic"),
	}
	_, err := New("p", []string{"topic"}, steps)
	var cerr *ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
	found := false
	for _, p := range cerr.Problems {
		if strings.Contains(p, "duplicate output key") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a duplicate output key problem, got %v", cerr.Problems)
	}
}

func TestNewCollectsAllProblems(t *testing.T) {
	steps := []Step{
		{OutputKey: "", Template: Template{Inputs: []string{"a"}, Body: "{a}"}}, // empty key, missing dep
		{OutputKey: "x", Template: Template{Inputs: []string{"b"}, Body: "no placeholder"}},
		{OutputKey: "x", Template: Template{Inputs: nil, Body: "static"}}, // duplicate
	}
	_, err := New("p", nil, steps)
	var cerr *ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
	// empty output key + unsatisfiable "a" + unreferenced "b" +
	// unsatisfiable "b" + duplicate "x"
	if len(cerr.Problems) < 4 {
		t.Errorf("expected all problems collected, got %v", cerr.Problems)
	}
}

func TestParse(t *testing.T) {
	yml := `
name: content
inputs: [topic, tone]
steps:
  - output: blog_post
    inputs: [topic, tone]
    template: "Write about {topic} in a {tone} tone."
  - output: summary
    temperature: 0.3
    model: other-model
    inputs: [blog_post]
    template: "Summarize: {blog_post}"
`
	p, err := Parse([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "content" {
		t.Errorf("expected name 'content', got %q", p.Name())
	}
	steps := p.Steps()
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[1].Model != "other-model" {
		t.Errorf("expected model override, got %q", steps[1].Model)
	}
	if steps[1].Temperature == nil || *steps[1].Temperature != 0.3 {
		t.Errorf("expected temperature override 0.3, got %v", steps[1].Temperature)
	}
}

func TestParseNoName(t *testing.T) {
	if _, err := Parse([]byte(`steps: []`)); err == nil {
		t.Error("expected error for pipeline without name")
	}
}

func TestParseInvalidDefinition(t *testing.T) {
	yml := `
name: broken
inputs: [topic]
steps:
  - output: a
    inputs: [topic, nope]
    template: "{topic} {nope}"
`
	_, err := Parse([]byte(yml))
	var cerr *ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
}
