// Package urls holds the documentation links shown in help text and
// troubleshooting hints.
//
// Usage:
//
//	import "github.com/muurk/awtrix/internal/urls"
//
//	fmt.Printf("Browse icons at %s\n", urls.Icons)
package urls
