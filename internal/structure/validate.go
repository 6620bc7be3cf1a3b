package structure

import (
	"fmt"
	"net/url"
)

// Validate checks the structure against the topic schema: a non-empty root
// array where every topic has a non-empty name, a valid non-empty URL, a
// present (possibly empty) sub_topics array, and, when breadcrumbs are
// given, at least one non-empty crumb.
func (s Structure) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: structure must contain at least one topic", ErrSchema)
	}
	for i := range s {
		if err := s[i].validate(fmt.Sprintf("[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Topic) validate(at string) error {
	if t.Name == "" {
		return fmt.Errorf("%w: %s: name must not be empty", ErrSchema, at)
	}
	if t.URL == "" {
		return fmt.Errorf("%w: %s: url must not be empty", ErrSchema, at)
	}
	if parsed, err := url.Parse(t.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %s: url %q is not a valid URI", ErrSchema, at, t.URL)
	}
	if t.SubTopics == nil {
		return fmt.Errorf("%w: %s: sub_topics must be present", ErrSchema, at)
	}
	if t.Breadcrumbs != nil {
		if len(t.Breadcrumbs) == 0 {
			return fmt.Errorf("%w: %s: breadcrumbs must contain at least one crumb", ErrSchema, at)
		}
		for j, crumb := range t.Breadcrumbs {
			if crumb == "" {
				return fmt.Errorf("%w: %s: breadcrumbs[%d] must not be empty", ErrSchema, at, j)
			}
		}
	}
	for i := range t.SubTopics {
		if err := t.SubTopics[i].validate(fmt.Sprintf("%s.sub_topics[%d]", at, i)); err != nil {
			return err
		}
	}
	return nil
}
