// Package preflight provides readiness checks for the files and commands a
// coding run depends on.
//
// The CLI runs them in two places:
//   - "petrarch config validate" renders every result as a table.
//   - parse, batch and validate log failed checks as warnings before coding
//     so a missing dictionary or coder shows up before the first sentence.
//
// Checks for unset optional dictionaries are skipped.
package preflight
