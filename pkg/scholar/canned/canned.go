// Package canned holds the fixed message pools used for welcome text, verse
// introductions and the simulated gateway, behind a selectable source so tests
// can pin the choice.
package canned

import (
	"math/rand/v2"
	"strings"
)

// Source yields a canned text for an index. Indexes wrap around the pool.
type Source interface {
	NextCanned(index int) string
}

// IndexFunc picks an index in [0, n).
type IndexFunc func(n int) int

// Random picks uniformly.
func Random(n int) int {
	return rand.IntN(n)
}

// Fixed always picks i (wrapped by the pool).
func Fixed(i int) IndexFunc {
	return func(int) int { return i }
}

type Pool struct {
	entries []string
	pick    IndexFunc
}

var _ Source = &Pool{}

func NewPool(entries []string, pick IndexFunc) *Pool {
	if pick == nil {
		pick = Random
	}
	return &Pool{entries: entries, pick: pick}
}

func (p *Pool) Len() int {
	return len(p.entries)
}

func (p *Pool) NextCanned(index int) string {
	if len(p.entries) == 0 {
		return ""
	}
	index %= len(p.entries)
	if index < 0 {
		index += len(p.entries)
	}
	return p.entries[index]
}

// Next selects an entry with the pool's IndexFunc.
func (p *Pool) Next() string {
	if len(p.entries) == 0 {
		return ""
	}
	return p.NextCanned(p.pick(len(p.entries)))
}

// Fill substitutes {name} placeholders.
func Fill(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
