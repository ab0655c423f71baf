package alias

import "errors"

// errStoreUnavailable is returned by MemoryStore when failure injection is
// enabled. Real stores return their own errors; the Manager treats them all
// the same way.
var errStoreUnavailable = errors.New("alias store unavailable")
