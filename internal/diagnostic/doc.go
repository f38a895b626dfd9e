// Package diagnostic provides structured errors, warnings and informational
// notes produced while discovering markers and generating companion sources.
//
// Key capabilities:
//   - Skip notes for marked declarations that cannot be generated
//   - Near-miss marker warnings with suggestions
//   - Build-fatal errors naming the owning type and member
//   - The static suppression table registered with the host toolchain
package diagnostic
