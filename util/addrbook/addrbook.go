// Package addrbook provides the AddressResolver interface and a set of
// ready-made implementations for mapping raw Ethereum hex addresses to
// human-readable names.
//
// Production code uses [Registry], which answers from the layered contract
// registry of the current decode. Tests inject [Map], a plain map that
// resolves to deterministic names.
package addrbook

import (
	vscommon "github.com/tranvictor/visualsign/common"
)

// AddressResolver maps a raw Ethereum hex address to a vscommon.Address
// (hex + optional name + optional token decimal).
//
// Contract: if the address is not known, Desc must be set to "unknown".
type AddressResolver interface {
	Resolve(addr string) vscommon.Address
}

// Chain resolves through each resolver in order and returns the first known
// answer.
type Chain []AddressResolver

func (c Chain) Resolve(addr string) vscommon.Address {
	for _, r := range c {
		if res := r.Resolve(addr); res.Known() {
			return res
		}
	}
	return vscommon.Address{Address: addr, Desc: vscommon.UnknownDesc}
}
