// Package images stores pizza images and normalizes the references pizzas keep to them.
package images

import (
	"strings"
)

// StoragePrefix is prepended to every reference handed out by the Store
const StoragePrefix = "dist/images/"

// PublicPrefix is the URL path images are served under
const PublicPrefix = "/images/"

// Name reduces a stored reference to the bare filename. It accepts
// "dist/images/f", "/dist/images/f", "images/f", "/images/f" and "f".
func Name(ref string) string {
	name := strings.TrimSpace(ref)
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimPrefix(name, "dist/")
	name = strings.TrimPrefix(name, "images/")
	return name
}

// URL turns a stored reference into a URL a browser can load, rooted at base.
// Absolute http(s) references are returned unchanged and an empty reference yields "".
func URL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if IsExternal(ref) {
		return ref
	}
	return strings.TrimRight(base, "/") + PublicPrefix + Name(ref)
}

// IsExternal reports whether ref is an absolute http(s) URL rather than a stored upload
func IsExternal(ref string) bool {
	ref = strings.TrimSpace(ref)
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
