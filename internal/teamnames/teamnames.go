// Package teamnames folds the different spellings CFBD endpoints use for the same school into
// one join key, and tracks names that could not be matched.
package teamnames

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalizer resolves aliases to canonical display names.
type Normalizer struct {
	// alias key -> canonical display name
	aliases map[string]string
}

// New validates an alias table. Aliases and canonical names must be non-empty, an alias key
// may not resolve to two different canonical names, and a canonical name may not itself be an
// alias of something else.
func New(aliases map[string]string) (*Normalizer, error) {
	out := make(map[string]string, len(aliases))
	var errs []error
	for alias, canonical := range aliases {
		ak, ck := Key(alias), Key(canonical)
		if ak == "" || ck == "" {
			errs = append(errs, fmt.Errorf("empty alias entry %q -> %q", alias, canonical))
			continue
		}
		if prev, ok := out[ak]; ok && Key(prev) != ck {
			errs = append(errs, fmt.Errorf("alias %q maps to both %q and %q", alias, prev, canonical))
			continue
		}
		out[ak] = canonical
	}
	for ak, canonical := range out {
		ck := Key(canonical)
		if target, ok := out[ck]; ok && ck != ak && Key(target) != ck {
			errs = append(errs, fmt.Errorf("canonical name %q is itself an alias of %q", canonical, target))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Normalizer{aliases: out}, nil
}

var (
	defaultOnce sync.Once
	defaultNorm *Normalizer
)

// Default returns the normalizer built from the bundled alias table. It panics if the table
// is invalid, which the package tests guard against.
func Default() *Normalizer {
	defaultOnce.Do(func() {
		n, err := New(defaultAliases)
		if err != nil {
			panic(fmt.Sprintf("teamnames: invalid alias table: %v", err))
		}
		defaultNorm = n
	})
	return defaultNorm
}

// Key folds case, accents, punctuation, and spacing. "San José St." and "san jose st" share
// a key; "Mississippi" and "Ole Miss" do not (that takes an alias).
func Key(name string) string {
	decomposed := norm.NFD.String(name)
	var b strings.Builder
	space := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining accent
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		case r == '&':
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString("and")
			space = true
		case r == '\'' || r == '’' || r == '.':
			// Hawai'i, St.
		default:
			space = true
		}
	}
	return b.String()
}

// Canonical returns the display name for name, or name itself when no alias applies.
func (n *Normalizer) Canonical(name string) string {
	if n == nil {
		return name
	}
	if canonical, ok := n.aliases[Key(name)]; ok {
		return canonical
	}
	return name
}

// Key returns the join key for name after alias resolution.
func (n *Normalizer) Key(name string) string {
	return Key(n.Canonical(name))
}

// Index builds a lookup keyed by the normalized name of each item.
func Index[T any](n *Normalizer, items []T, name func(T) string) map[string]T {
	out := make(map[string]T, len(items))
	for _, item := range items {
		if k := n.Key(name(item)); k != "" {
			out[k] = item
		}
	}
	return out
}

// Unmatched collects names that missed a join. Safe for concurrent use.
type Unmatched struct {
	mu    sync.Mutex
	names map[string]struct{}
}

// Add records a missed name.
func (u *Unmatched) Add(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.names == nil {
		u.names = make(map[string]struct{})
	}
	u.names[name] = struct{}{}
}

// List returns the missed names sorted.
func (u *Unmatched) List() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.names))
	for name := range u.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
