// Package fuzztests houses Go fuzz harnesses for the call-site grammar and
// the analyzer. They guard against panics on arbitrary input and check the
// rewrite invariants on whatever the grammar accepts.
package fuzztests
