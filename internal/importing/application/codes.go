package application

import (
	"strconv"
	"strings"
)

// codeSet tracks short codes handed out for one entity type within a
// single import run. Codes are not deduplicated across entity types or
// across runs.
type codeSet struct {
	used map[string]struct{}
}

func newCodeSet() *codeSet {
	return &codeSet{used: make(map[string]struct{})}
}

// next derives a short code from name: the first 3 runes upper-cased,
// falling back to the first 2 runes plus an incrementing suffix when
// the candidate is already taken.
func (cs *codeSet) next(name string) string {
	code := upperPrefix(name, 3)
	counter := 1
	for {
		if _, taken := cs.used[code]; !taken {
			break
		}
		code = upperPrefix(name, 2) + strconv.Itoa(counter)
		counter++
	}
	cs.used[code] = struct{}{}
	return code
}

func upperPrefix(name string, n int) string {
	runes := []rune(name)
	if len(runes) > n {
		runes = runes[:n]
	}
	return strings.ToUpper(string(runes))
}
