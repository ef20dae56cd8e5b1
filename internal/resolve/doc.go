// Package resolve maps free-text labels to records in an external store.
//
// A Resolver lists every record on each call, compares normalized titles
// against the normalized label under a MatchPolicy, and creates a record
// titled with the original label when nothing matches. Nothing is cached
// between calls; KeyedMutex serializes concurrent resolutions of one label.
package resolve
