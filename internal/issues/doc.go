// Package issues tags sentences with topical issue codes.
//
// Matching is plain substring containment against the upper-cased sentence,
// scanned in dictionary order. Codes beginning with "~" are veto codes: the
// first veto phrase found empties the result for the sentence, whatever was
// accumulated before it.
package issues
