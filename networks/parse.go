package networks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// DisplayName returns the payload label for chainID, or
// "Unknown Network (Chain ID: N)" for chains outside the catalogue.
func DisplayName(chainID uint64) string {
	n, err := GetNetworkByID(chainID)
	if err != nil {
		return fmt.Sprintf("Unknown Network (Chain ID: %d)", chainID)
	}
	return n.GetDisplayName()
}

// DisplayNameOf is DisplayName for an optional chain id.
func DisplayNameOf(chainID *uint64) string {
	if chainID == nil {
		return "Unknown Network"
	}
	return DisplayName(*chainID)
}

// ParseChainID accepts a decimal chain id or a case-insensitive network name
// (canonical or alternative). Numeric ids are accepted even when the chain
// is not in the catalogue.
func ParseChainID(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty network")
	}
	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		return id, nil
	}
	n, err := GetNetwork(s)
	if err != nil {
		if suggestions := suggest(s); len(suggestions) > 0 {
			return 0, errors.Wrapf(err, "did you mean %s", strings.Join(suggestions, ", "))
		}
		return 0, err
	}
	return n.GetChainID(), nil
}

// ParseNetwork resolves s to a catalogued Network.
func ParseNetwork(s string) (Network, error) {
	id, err := ParseChainID(s)
	if err != nil {
		return nil, err
	}
	return GetNetworkByID(id)
}

func suggest(s string) []string {
	names := GetSupportedNetworkNames()
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	matches := fuzzy.Find(strings.ToLower(s), lowered)
	seen := map[string]bool{}
	res := []string{}
	for _, m := range matches {
		name := names[m.Index]
		if seen[name] {
			continue
		}
		seen[name] = true
		res = append(res, name)
		if len(res) == maxSuggestions {
			break
		}
	}
	return res
}
