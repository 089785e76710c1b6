// Package slugutil derives URL-safe slugs from display names. The
// input is trimmed first so that " Books " and "Books" always produce
// the same slug.
package slugutil

import (
	"strings"

	"github.com/gosimple/slug"
)

// Make returns the slug for a display name.
func Make(name string) string {
	return slug.Make(strings.TrimSpace(name))
}
