package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello, World! 2024", "hello-world-2024"},
		{"Test Post", "test-post"},
		{"  --Leading and trailing!!", "leading-and-trailing"},
		{"Go 1.25 & MongoDB", "go-1-25-mongodb"},
		{"Café déjà vu", "caf-d-j-vu"},
		{"!!!", ""},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestSlugifyShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	for _, title := range []string{
		"A", "Über cool API?", "x---y", "Tabs\tand\nnewlines", "100% Go", "C++ vs. Go: round 2",
	} {
		assert.Regexp(t, shape, Slugify(title), "title %q", title)
	}
}
