package netfile

import (
	"cmp"
	"sort"
	"strconv"

	"github.com/matzehuels/netfile/pkg/errors"
)

// Registry maps version tags to codecs. It is immutable once built.
//
// Tags are kept as strings for file compatibility but ordered as integers,
// so "10" sorts after "9".
type Registry struct {
	byNum  map[int]*Codec
	sorted []*Codec
}

// NewRegistry builds a registry from a fixed list of codecs. Every tag must
// be numeric and unique, and at least one codec is required.
func NewRegistry(codecs ...*Codec) (*Registry, error) {
	if len(codecs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "registry needs at least one codec")
	}
	r := &Registry{byNum: make(map[int]*Codec, len(codecs))}
	for _, c := range codecs {
		if c == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "nil codec")
		}
		if err := errors.ValidateTag(c.Tag); err != nil {
			return nil, err
		}
		n, _ := strconv.Atoi(c.Tag)
		if prev, ok := r.byNum[n]; ok {
			return nil, errors.New(errors.ErrCodeInvalidVersion, "duplicate version tag %q (already registered as %q)", c.Tag, prev.Tag)
		}
		r.byNum[n] = c
		r.sorted = append(r.sorted, c)
	}
	sort.Slice(r.sorted, func(i, j int) bool {
		return CompareTags(r.sorted[i].Tag, r.sorted[j].Tag) < 0
	})
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. It is meant for
// static registration lists.
func MustRegistry(codecs ...*Codec) *Registry {
	r, err := NewRegistry(codecs...)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = MustRegistry(V1(), V2(), V3())

// DefaultRegistry returns the registry of every format this package knows.
func DefaultRegistry() *Registry { return defaultRegistry }

// Resolve returns the codec for tag. Tags are matched by numeric value, so
// "03" resolves to the codec registered as "3".
func (r *Registry) Resolve(tag string) (*Codec, bool) {
	if errors.ValidateTag(tag) != nil {
		return nil, false
	}
	n, _ := strconv.Atoi(tag)
	c, ok := r.byNum[n]
	return c, ok
}

// Latest returns the codec with the numerically highest tag.
func (r *Registry) Latest() *Codec {
	return r.sorted[len(r.sorted)-1]
}

// Codecs returns the registered codecs, oldest first.
func (r *Registry) Codecs() []*Codec {
	return append([]*Codec(nil), r.sorted...)
}

// Tags returns the registered tags, oldest first.
func (r *Registry) Tags() []string {
	tags := make([]string, len(r.sorted))
	for i, c := range r.sorted {
		tags[i] = c.Tag
	}
	return tags
}

// CompareTags orders two version tags numerically. Tags that do not parse
// sort before all numeric tags and compare as strings among themselves.
func CompareTags(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA != nil && errB != nil:
		return cmp.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return cmp.Compare(na, nb)
}
