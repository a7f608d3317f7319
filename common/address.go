package common

import (
	"fmt"
)

// Address is an address together with whatever the resolver knew about it.
// Desc is "unknown" when nothing was found.
type Address struct {
	Address string
	Desc    string
	Decimal int64
}

const UnknownDesc = "unknown"

func (a Address) Known() bool {
	return a.Desc != "" && a.Desc != UnknownDesc
}

// Name returns the description, or "" for unknown addresses.
func (a Address) Name() string {
	if !a.Known() {
		return ""
	}
	return a.Desc
}

// PlainAddress formats an Address as a plain string with no ANSI color codes.
func PlainAddress(addr Address) string {
	if addr.Address == "" {
		return ""
	}
	if addr.Known() {
		return fmt.Sprintf("%s (%s)", addr.Address, addr.Desc)
	}
	return addr.Address
}
