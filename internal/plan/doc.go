// Package plan turns discovered markers into immutable descriptors and groups
// them by owning type for emission.
//
// Planning pipeline:
//  1. Build one Descriptor per marker (independent, safe to run in parallel)
//     - resolve the member's type and parameter types through the oracle
//     - walk the base-type chain to decide whether a source is stream-shaped
//     - resolve forwarded attributes for the field and property slots
//  2. Group descriptors by owning type in first-seen order
//  3. Reject groups with inconsistent owning-type metadata or colliding
//     generated names
package plan
