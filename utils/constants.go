// File: utils/constants.go
package utils

// StateCachePrefix is the prefix used for Redis conversation state keys.
const StateCachePrefix = "dlg:state:"
