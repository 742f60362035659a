package binary

import "unicode/utf8"

// validateUTF8 checks name against the standard Unicode well-formedness
// table (Unicode 11.0 §3.9, Table 3-7). The source this module was derived
// from hand-rolled this check with off-by-one boundary arithmetic in its
// multi-byte length checks; rather than reproduce that bug, this validator
// uses the standard library's table-driven decoder, which implements the
// same table exactly.
func validateUTF8(name []byte) bool {
	return utf8.Valid(name)
}
