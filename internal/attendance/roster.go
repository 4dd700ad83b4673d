package attendance

import (
	"bytes"
	"fmt"
	"strings"
)

// Roster is the append-only list of saved records for this process.
// Records are kept in insertion order and read back newest first.
type Roster struct {
	records []Record
	clock   Clock
	ids     IDGen
}

func NewRoster(clock Clock, ids IDGen) *Roster {
	return &Roster{clock: clock, ids: ids}
}

// Add turns p into a Record stamped with courseName. It reports false
// without error when the course name is blank or the signature missing.
func (r *Roster) Add(p Payload, courseName string) (Record, bool, error) {
	if strings.TrimSpace(courseName) == "" || len(p.Signature) == 0 {
		return Record{}, false, nil
	}
	id, err := r.ids.New()
	if err != nil {
		return Record{}, false, fmt.Errorf("generate record id: %w", err)
	}
	rec := Record{
		ID:                  id,
		CourseName:          courseName,
		TrainingDate:        p.TrainingDate,
		ParticipantName:     p.ParticipantName,
		ParticipantPosition: p.ParticipantPosition,
		ParticipantEmpresa:  p.ParticipantEmpresa,
		Signature:           bytes.Clone(p.Signature),
		CreatedAt:           r.clock.Now().UTC(),
	}
	r.records = append(r.records, rec)
	return rec, true, nil
}

// Records returns a snapshot, most recent first.
func (r *Roster) Records() []Record {
	out := make([]Record, len(r.records))
	for i, rec := range r.records {
		out[len(r.records)-1-i] = rec
	}
	return out
}

func (r *Roster) Len() int { return len(r.records) }
