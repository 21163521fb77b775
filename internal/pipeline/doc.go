// Package pipeline runs the scaffolding steps in their fixed order: the Vite
// web app, its template files, the Cordova project with its platform and
// plugins, and finally the root package.json. Steps run one at a time because
// each depends on files produced by the previous one; the first failure stops
// the run and nothing already created is removed.
package pipeline
