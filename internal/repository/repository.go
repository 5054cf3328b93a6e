// Package repository provides typed access to the remote admin API's
// collections. Reads of cached collections go through the query store; every
// write returns a normalised error on failure and commits nothing locally.
package repository

import (
	"context"
	"net/url"
	"strconv"
)

// apiClient is the slice of the gateway the repositories use.
type apiClient interface {
	Get(ctx context.Context, path string, out interface{}, fallback string) error
	Post(ctx context.Context, path string, body, out interface{}, fallback string) error
	Put(ctx context.Context, path string, body, out interface{}, fallback string) error
	Patch(ctx context.Context, path string, body, out interface{}, fallback string) error
}

// listQuery renders paging and filter parameters into a query string, which
// doubles as the cache fingerprint for the filtered read.
type listQuery struct {
	values url.Values
}

func newListQuery() *listQuery {
	return &listQuery{values: url.Values{}}
}

func (q *listQuery) set(key, value string) *listQuery {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

func (q *listQuery) setInt(key string, value int) *listQuery {
	if value > 0 {
		q.values.Set(key, strconv.Itoa(value))
	}
	return q
}

// encode returns the sorted query string, empty when no parameter is set.
func (q *listQuery) encode() string {
	return q.values.Encode()
}

// path appends the query string to the base path.
func (q *listQuery) path(base string) string {
	encoded := q.encode()
	if encoded == "" {
		return base
	}
	return base + "?" + encoded
}
