// Package prompt builds the system-role instruction that seeds every
// tutoring session. Building is pure and deterministic: absent or partial
// profile fields degrade to defaults instead of failing.
package prompt

import (
	"fmt"
	"strings"
)

// Profile holds free-form attributes describing the student. Only the
// "name" key is consumed by the builder; it is not stored beyond the
// resulting system message.
type Profile map[string]string

// Name returns the student's display name or the empty string.
func (p Profile) Name() string { return p["name"] }

// Default labels substituted when the caller supplies no value.
const (
	DefaultStudentName = "Colleague"
	DefaultTopic       = "General Medicine"
)

// Options configure a Builder.
type Options struct {
	StudentFallback string
	TopicFallback   string
}

// Builder produces system instructions for a medical tutoring mentor.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder with optional overrides for the fallback
// labels.
func NewBuilder(optFns ...func(o *Options)) *Builder {
	opts := Options{
		StudentFallback: DefaultStudentName,
		TopicFallback:   DefaultTopic,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Builder{opts: opts}
}

// Build returns the system instruction for the given profile and topic.
// It is a total function: nil profiles and empty topics fall back to the
// configured defaults.
func (b *Builder) Build(profile Profile, topic string) string {
	name := strings.TrimSpace(profile.Name())
	if name == "" {
		name = b.opts.StudentFallback
	}
	if strings.TrimSpace(topic) == "" {
		topic = b.opts.TopicFallback
	}
	return fmt.Sprintf(`You are a senior medical mentor with broad clinical and academic experience.
Your goal is to help the student %s master the topic: %q.

Behavior guidelines:
1. Clinical precision: use correct medical terminology, but explain complex terms.
2. Extreme brevity: answers are 2-3 sentences maximum. Get to the point.
3. Practical focus: relate theory to a quick clinical case or application.
4. Safety: if asked something dangerous, remember you are an educational AI, not a physician treating a real patient.

Style: professional, empathetic and direct. Do not greet repeatedly.`, name, topic)
}
