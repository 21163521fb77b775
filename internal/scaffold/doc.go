// Package scaffold holds the static content written into a generated web app:
// the embedded presets (dependency set, Cordova plugins, template files), the
// template renderer, and the index.html patch that loads cordova.js.
package scaffold
