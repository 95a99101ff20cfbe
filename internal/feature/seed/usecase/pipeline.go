// Package usecase implements the bulk seeding of reference tables.
package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shadowdark_backend/internal/shared/catalog"
)

// ErrMalformedCollection is returned when the seed payload is not a JSON array.
// It is the only error that aborts a whole seeding call.
var ErrMalformedCollection = errors.New("seed collection must be a JSON array")

// Inserter stores one decoded record unless its slug already exists.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type Inserter[T any] interface {
	InsertIfAbsent(ctx context.Context, record T) (catalog.InsertResult, error)
}

// Result summarises one seeding call.
type Result struct {
	Total    int      `json:"total"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// Pipeline seeds one table from a collection of raw records.
type Pipeline[T any] struct {
	kind          string
	progressEvery int
	decode        func(json.RawMessage) (T, error)
	store         Inserter[T]
	log           *zap.Logger
}

// NewPipeline creates a Pipeline. kind names the record type in log lines and
// error messages ("monster", "spell"); a progress line is logged every
// progressEvery inserts (0 disables it).
func NewPipeline[T any](kind string, progressEvery int, decode func(json.RawMessage) (T, error), store Inserter[T], log *zap.Logger) *Pipeline[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline[T]{
		kind:          kind,
		progressEvery: progressEvery,
		decode:        decode,
		store:         store,
		log:           log,
	}
}

// Kind returns the record type this pipeline seeds.
func (p *Pipeline[T]) Kind() string { return p.kind }

// ParseCollection splits a JSON array into its raw elements.
func ParseCollection(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformedCollection
	}
	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCollection, err)
	}
	return records, nil
}

// Seed parses data as a JSON array and runs SeedAll on its elements.
func (p *Pipeline[T]) Seed(ctx context.Context, data []byte) (Result, error) {
	records, err := ParseCollection(data)
	if err != nil {
		return Result{}, err
	}
	return p.SeedAll(ctx, records)
}

// SeedAll processes records one at a time in input order. A record that fails
// to decode, validate or insert is reported in Result.Errors and the loop
// moves on to the next one. Only context cancellation stops the loop early.
func (p *Pipeline[T]) SeedAll(ctx context.Context, records []json.RawMessage) (Result, error) {
	res := Result{Total: len(records), Errors: []string{}}

	p.log.Info(fmt.Sprintf("Starting %s seeding: %d %ss to process", p.kind, res.Total, p.kind))

	for _, raw := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		out, err := p.insertOne(ctx, raw)
		if err != nil {
			name, slug := identify(raw)
			msg := fmt.Sprintf("Failed to insert %s \"%s\" (%s): %v", p.kind, name, slug, err)
			p.log.Error(msg)
			res.Errors = append(res.Errors, msg)
			continue
		}

		switch out.Status {
		case catalog.StatusInserted:
			res.Inserted++
			if p.progressEvery > 0 && res.Inserted%p.progressEvery == 0 {
				p.log.Info(fmt.Sprintf("Progress: %d %ss inserted...", res.Inserted, p.kind))
			}
		case catalog.StatusSkipped:
			res.Skipped++
		}
	}

	p.log.Info(fmt.Sprintf("Seeding complete: %d inserted, %d skipped, %d errors",
		res.Inserted, res.Skipped, len(res.Errors)))
	return res, nil
}

func (p *Pipeline[T]) insertOne(ctx context.Context, raw json.RawMessage) (catalog.InsertResult, error) {
	rec, err := p.decode(raw)
	if err != nil {
		return catalog.InsertResult{}, err
	}
	return p.store.InsertIfAbsent(ctx, rec)
}

// identify pulls name and slug out of a record for error messages, even when
// the record as a whole does not decode.
func identify(raw json.RawMessage) (name, slug string) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", ""
	}
	_ = json.Unmarshal(probe["name"], &name)
	_ = json.Unmarshal(probe["slug"], &slug)
	return name, slug
}
