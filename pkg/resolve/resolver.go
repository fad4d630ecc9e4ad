package resolve

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scaledbot/censusbot/pkg/census"
	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/logging"
	"github.com/scaledbot/censusbot/pkg/wikitext"
)

// Stage names the resolution step that produced a match.
type Stage string

// Resolution stages, in the order they are tried.
const (
	StageNone   Stage = ""
	StageDirect Stage = "direct"
	StageSuffix Stage = "suffix"
	StageFIPS   Stage = "fips"
	StageFuzzy  Stage = "fuzzy"
)

// Candidate is an index entry considered during resolution.
type Candidate struct {
	Key    string        `json:"key" yaml:"key"`
	Record census.Record `json:"record" yaml:"record"`
}

// Resolution is the outcome of resolving one title.
type Resolution struct {
	Title      string        `json:"title" yaml:"title"`
	Normalized string        `json:"normalized" yaml:"normalized"`
	Key        string        `json:"key,omitempty" yaml:"key,omitempty"`
	Record     census.Record `json:"record" yaml:"record"`
	Stage      Stage         `json:"stage,omitempty" yaml:"stage,omitempty"`
	Found      bool          `json:"found" yaml:"found"`

	// Candidates holds the suffix matches when more than one was found.
	Candidates []Candidate `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	// FIPS is the code read from the article during disambiguation.
	FIPS string `json:"fips,omitempty" yaml:"fips,omitempty"`
	// Similarity is the fuzzy ratio of a StageFuzzy match.
	Similarity float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// Resolver resolves titles against one census index.
type Resolver struct {
	index       *census.Index
	designators []string
	threshold   float64
	strict      bool
	logger      *zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDesignators sets the place-type suffixes tried, in order.
func WithDesignators(designators ...string) Option {
	return func(r *Resolver) {
		r.designators = slices.Clone(designators)
	}
}

// WithThreshold sets the minimum fuzzy similarity ratio.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithStrict makes a failed FIPS disambiguation final instead of falling
// through to fuzzy matching.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// WithLogger sets the logger used for disambiguation events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver over index.
func New(index *census.Index, opts ...Option) *Resolver {
	r := &Resolver{
		index:       index,
		designators: slices.Clone(constants.DefaultDesignators),
		threshold:   constants.DefaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrNop(r.logger)
	return r
}

// Resolve finds the index key for title. A title that matches nothing is
// reported with Found false and a nil error. The only error is
// errors.ErrCanceled, returned when text fails because its context ended.
// Any other text failure counts as an article without a FIPS code.
func (r *Resolver) Resolve(title string, text TextProvider) (Resolution, error) {
	norm := Normalize(title)
	res := Resolution{Title: title, Normalized: norm}

	if rec, ok := r.index.Lookup(norm); ok {
		return r.found(res, norm, rec, StageDirect), nil
	}

	var candidates []Candidate
	for _, key := range suffixed(norm, r.designators) {
		if rec, ok := r.index.Lookup(key); ok {
			candidates = append(candidates, Candidate{Key: key, Record: rec})
		}
	}

	switch len(candidates) {
	case 0:
	case 1:
		return r.found(res, candidates[0].Key, candidates[0].Record, StageSuffix), nil
	default:
		res.Candidates = candidates
		r.logger.Debug().
			Str("title", title).
			Int("candidates", len(candidates)).
			Msg("Multiple candidates found")

		match, fips, err := r.disambiguate(title, candidates, text)
		if err != nil {
			return res, err
		}
		res.FIPS = fips
		if match != nil {
			return r.found(res, match.Key, match.Record, StageFIPS), nil
		}
		if r.strict {
			return res, nil
		}
	}

	if key, score, ok := closest(norm, r.index.Keys(), r.threshold); ok {
		rec, _ := r.index.Lookup(key)
		res = r.found(res, key, rec, StageFuzzy)
		res.Similarity = score
		return res, nil
	}
	return res, nil
}

func (r *Resolver) found(res Resolution, key string, rec census.Record, stage Stage) Resolution {
	res.Key = key
	res.Record = rec
	res.Stage = stage
	res.Found = true
	return res
}

// disambiguate picks the first candidate whose geoid ends with the article's
// FIPS code.
func (r *Resolver) disambiguate(title string, candidates []Candidate, text TextProvider) (*Candidate, string, error) {
	if text == nil {
		return nil, "", nil
	}

	raw, err := text()
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, "", stderrors.Join(errors.ErrCanceled, err)
		}
		r.logger.Warn().Err(err).Str("title", title).Msg("Could not fetch article for disambiguation")
		return nil, "", nil
	}

	fips, ok := FIPS(wikitext.Parse(raw))
	if !ok {
		r.logger.Debug().Str("title", title).Msg("No FIPS code in article")
		return nil, "", nil
	}

	for i := range candidates {
		if strings.HasSuffix(candidates[i].Record.GeoID, fips) {
			r.logger.Debug().
				Str("title", title).
				Str("fips", fips).
				Str("census_name", candidates[i].Key).
				Msg("Matched via FIPS code")
			return &candidates[i], fips, nil
		}
	}
	return nil, fips, nil
}
