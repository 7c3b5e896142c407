// Package plume is the root of the plume terminal prompt toolkit.
package plume

// Version is the plume release.
const Version = "0.1.0"
