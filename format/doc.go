// Package format renders disk layouts as text.
//
// # Renderings
//
//   - [Dense]: one character per block, the classic puzzle picture
//     ("00...111...2...")
//   - [Regions]: one line per run of identical content, suitable for
//     large layouts and for diffing
//   - [Diff]: unified diff of two [Regions] renderings
package format
