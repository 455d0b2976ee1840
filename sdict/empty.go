package sdict

// emptySentinel is the unexported type backing Empty, so no other value in
// the process can compare equal to the sentinel.
type emptySentinel struct{}

func (*emptySentinel) String() string { return "EMPTY" }

// Empty is the distinguished "no stored value and no declared default" result
// of attribute reads. It is a process-wide singleton with identity-based
// equality: compare with == or IsEmpty. Empty is never stored inside a Dict
// and never appears in ToMap output.
var Empty = &emptySentinel{}

// IsEmpty reports whether v is the Empty sentinel.
func IsEmpty(v any) bool {
	return v == Empty
}
