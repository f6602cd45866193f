// Package urls provides centralized constants for the service endpoint and
// documentation URLs used throughout the application.
//
// Usage:
//
//	import "github.com/muurk/userdeck/internal/urls"
//
//	fmt.Printf("For more information, see: %s\n", urls.TroubleshootingGuide)
package urls
