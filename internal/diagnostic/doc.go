// Package diagnostic provides structured errors, warnings and infos for the
// check mode of the schema generator.
//
// Unlike a generation run, which stops at the first problem, a check collects
// every problem of a documentation source so they can be fixed in one pass:
//   - Malformed field types
//   - Dependency cycles between resources
//   - Type tokens passed through without a known mapping
package diagnostic
