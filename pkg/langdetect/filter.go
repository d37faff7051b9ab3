package langdetect

import "github.com/go-enry/go-enry/v2"

// IsBinary reports whether content looks like binary data.
// Only a prefix of the content is inspected.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// IsVendor reports whether a slash-separated path is vendored or
// third-party code (vendor/, node_modules/, minified bundles).
func IsVendor(path string) bool {
	return enry.IsVendor(path)
}

// IsGenerated reports whether a file was produced by a code generator.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(path, content)
}
