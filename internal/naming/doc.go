// Package naming derives the identifiers a generated project needs from the
// human-readable application name and the publisher's domain: the npm package
// name, the Cordova widget id, and the display name.
package naming
