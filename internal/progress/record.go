package progress

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// RecordVersion is written into every encoded record.
const RecordVersion = "v1"

// legacyDateLayout is the format of JavaScript's Date.prototype.toDateString,
// used by records saved from the browser client.
const legacyDateLayout = "Mon Jan 02 2006"

//go:embed record.schema.json
var recordSchemaJSON []byte

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

// Record is the persisted form of a State.
type Record struct {
	Version          string   `json:"version,omitempty"`
	Hearts           int      `json:"hearts"`
	XP               int      `json:"xp"`
	TotalXP          int      `json:"totalXp"`
	Streak           int      `json:"streak"`
	CurrentStage     int      `json:"currentStage"`
	CurrentSubStage  int      `json:"currentSubStage"`
	Gems             int      `json:"gems"`
	LastPlayDate     *string  `json:"lastPlayDate"`
	CompletedLessons []string `json:"completedLessons"`
}

// RecordOf captures s. Completed lessons are written in stage order.
func RecordOf(s State) Record {
	r := Record{
		Version:          RecordVersion,
		Hearts:           s.Hearts,
		XP:               s.XP,
		TotalXP:          s.TotalXP,
		Streak:           s.Streak,
		CurrentStage:     s.CurrentStage,
		CurrentSubStage:  s.CurrentSubStage,
		Gems:             s.Gems,
		CompletedLessons: []string{},
	}
	if s.LastPlayDate != nil {
		d := s.LastPlayDate.String()
		r.LastPlayDate = &d
	}
	for _, id := range s.CompletedLessons.Sorted() {
		r.CompletedLessons = append(r.CompletedLessons, id.String())
	}
	return r
}

// Partial converts a complete record into a LoadState payload.
func (r Record) Partial() (Partial, error) {
	p := Partial{
		Hearts:          ptr(r.Hearts),
		XP:              ptr(r.XP),
		TotalXP:         ptr(r.TotalXP),
		Streak:          ptr(r.Streak),
		CurrentStage:    ptr(r.CurrentStage),
		CurrentSubStage: ptr(r.CurrentSubStage),
		Gems:            ptr(r.Gems),

		SetLastPlayDate:     true,
		SetCompletedLessons: true,
	}
	if r.LastPlayDate != nil {
		d, err := parsePlayDate(*r.LastPlayDate)
		if err != nil {
			return Partial{}, err
		}
		p.LastPlayDate = &d
	}
	ids, err := parseLessonIDs(r.CompletedLessons)
	if err != nil {
		return Partial{}, err
	}
	p.CompletedLessons = ids
	return p, nil
}

// EncodeRecord marshals r as JSON.
func EncodeRecord(r Record) ([]byte, error) {
	return json.Marshal(r)
}

// rawRecord distinguishes absent fields from zero values.
type rawRecord struct {
	Version          string          `json:"version"`
	Hearts           *int            `json:"hearts"`
	XP               *int            `json:"xp"`
	TotalXP          *int            `json:"totalXp"`
	Streak           *int            `json:"streak"`
	CurrentStage     *int            `json:"currentStage"`
	CurrentSubStage  *int            `json:"currentSubStage"`
	Gems             *int            `json:"gems"`
	LastPlayDate     json.RawMessage `json:"lastPlayDate"`
	CompletedLessons []string        `json:"completedLessons"`
}

// DecodeRecord validates and decodes a persisted record. Fields missing from
// the record stay nil in the returned Partial. All failures wrap
// ErrPersistenceRead.
func DecodeRecord(data []byte) (Partial, error) {
	if err := validateRecord(data); err != nil {
		return Partial{}, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
	}

	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return Partial{}, fmt.Errorf("%w: decode record: %v", ErrPersistenceRead, err)
	}
	if raw.Version != "" && (!semver.IsValid(raw.Version) || semver.Major(raw.Version) != semver.Major(RecordVersion)) {
		return Partial{}, fmt.Errorf("%w: unsupported record version %q", ErrPersistenceRead, raw.Version)
	}

	p := Partial{
		Hearts:          raw.Hearts,
		XP:              raw.XP,
		TotalXP:         raw.TotalXP,
		Streak:          raw.Streak,
		CurrentStage:    raw.CurrentStage,
		CurrentSubStage: raw.CurrentSubStage,
		Gems:            raw.Gems,
	}

	if raw.LastPlayDate != nil {
		p.SetLastPlayDate = true
		var s *string
		if err := json.Unmarshal(raw.LastPlayDate, &s); err != nil {
			return Partial{}, fmt.Errorf("%w: lastPlayDate: %v", ErrPersistenceRead, err)
		}
		if s != nil {
			d, err := parsePlayDate(*s)
			if err != nil {
				return Partial{}, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
			}
			p.LastPlayDate = &d
		}
	}

	ids, err := parseLessonIDs(raw.CompletedLessons)
	if err != nil {
		return Partial{}, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
	}
	p.CompletedLessons = ids
	p.SetCompletedLessons = raw.CompletedLessons != nil
	return p, nil
}

func validateRecord(data []byte) error {
	schema, err := compiledRecordSchema()
	if err != nil {
		return fmt.Errorf("compile record schema: %w", err)
	}
	var parsed any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledRecordSchema() (*jsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(recordSchemaJSON, &doc); err != nil {
			recordSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://owllearn-record.json"
		if err := c.AddResource(url, doc); err != nil {
			recordSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		recordSchema, recordSchemaErr = c.Compile(url)
	})
	return recordSchema, recordSchemaErr
}

// parsePlayDate accepts ISO dates and the legacy toDateString form.
func parsePlayDate(s string) (civil.Date, error) {
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(legacyDateLayout, s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("lastPlayDate %q is not a calendar date", s)
	}
	return civil.DateOf(t), nil
}

func parseLessonIDs(raw []string) ([]LessonID, error) {
	if raw == nil {
		return nil, nil
	}
	ids := make([]LessonID, 0, len(raw))
	for _, s := range raw {
		id, err := ParseLessonID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func ptr[T any](v T) *T { return &v }
