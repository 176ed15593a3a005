package common

// UnknownStr is the String() form of unrecognized enum values.
const UnknownStr = "unknown"
