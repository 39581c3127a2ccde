// Package banlist holds the precomputed set of banned group identifiers.
// The set stores 32-bit murmur3 hashes rather than names; membership checks
// hash the candidate with the same function the set was built with, so the
// data file and the code must never diverge on hashing.
package banlist

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spaolacci/murmur3"
)

// Set is an immutable membership set of hashed group identifiers.
type Set struct {
	hashes map[int32]struct{}
}

// Hash returns the signed 32-bit murmur3 hash (seed 0) of a group name,
// lowercased first. Group names are ASCII, so lowercasing matches the
// case-folding the set was built with.
func Hash(name string) int32 {
	return int32(murmur3.Sum32([]byte(strings.ToLower(name))))
}

// Load reads a ban set from a file of decimal signed 32-bit hashes, one per
// line. Blank lines and lines starting with '#' are ignored. A malformed
// line is a hard error: a silently shorter set would quietly readmit banned
// groups.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ban list: %w", err)
	}
	defer f.Close()

	hashes := make(map[int32]struct{})
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		h, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ban list %s line %d: invalid hash %q: %w", path, lineNo, line, err)
		}
		hashes[int32(h)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ban list: %w", err)
	}
	return &Set{hashes: hashes}, nil
}

// NewFromHashes builds a Set from precomputed hashes. Used by tests and by
// callers that embed the data.
func NewFromHashes(hashes []int32) *Set {
	m := make(map[int32]struct{}, len(hashes))
	for _, h := range hashes {
		m[h] = struct{}{}
	}
	return &Set{hashes: m}
}

// Empty returns a set that bans nothing.
func Empty() *Set {
	return &Set{hashes: map[int32]struct{}{}}
}

// Contains reports whether the group name is banned.
func (s *Set) Contains(name string) bool {
	_, ok := s.hashes[Hash(name)]
	return ok
}

// Len returns the number of banned hashes.
func (s *Set) Len() int {
	return len(s.hashes)
}
