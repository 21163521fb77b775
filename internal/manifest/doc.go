// Package manifest builds, persists, and validates the root package.json that
// chains the web build, the asset sync into the Cordova project, and the
// native build into npm scripts.
package manifest
