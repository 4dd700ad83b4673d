package attendance

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (g *seqIDs) New() (string, error) {
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

type failingIDs struct{}

func (failingIDs) New() (string, error) { return "", errors.New("entropy exhausted") }

var testNow = time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

func payload(name string) Payload {
	return Payload{
		TrainingDate:        "2026-03-05",
		ParticipantName:     name,
		ParticipantPosition: "Operario",
		ParticipantEmpresa:  "ACME",
		Signature:           []byte("png-" + name),
	}
}

func TestRoster_Add(t *testing.T) {
	r := NewRoster(fixedClock{t: testNow}, &seqIDs{})

	rec, ok, err := r.Add(payload("Ana"), "Seguridad Industrial")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Record{
		ID:                  "id-001",
		CourseName:          "Seguridad Industrial",
		TrainingDate:        "2026-03-05",
		ParticipantName:     "Ana",
		ParticipantPosition: "Operario",
		ParticipantEmpresa:  "ACME",
		Signature:           []byte("png-Ana"),
		CreatedAt:           testNow,
	}, rec)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_AddRefused(t *testing.T) {
	r := NewRoster(fixedClock{t: testNow}, &seqIDs{})

	_, ok, err := r.Add(payload("Ana"), "   ")
	assert.NoError(t, err)
	assert.False(t, ok)

	p := payload("Ana")
	p.Signature = nil
	_, ok, err = r.Add(p, "Seguridad Industrial")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.Zero(t, r.Len())
}

func TestRoster_AddCopiesSignature(t *testing.T) {
	r := NewRoster(fixedClock{t: testNow}, &seqIDs{})
	p := payload("Ana")

	_, _, err := r.Add(p, "Curso")
	require.NoError(t, err)
	p.Signature[0] = 'X'

	assert.Equal(t, []byte("png-Ana"), r.Records()[0].Signature)
}

func TestRoster_RecordsNewestFirst(t *testing.T) {
	r := NewRoster(fixedClock{t: testNow}, &seqIDs{})
	for _, n := range []string{"A", "B", "C"} {
		_, _, err := r.Add(payload(n), "Curso")
		require.NoError(t, err)
	}

	recs := r.Records()
	var names []string
	for _, rec := range recs {
		names = append(names, rec.ParticipantName)
	}
	assert.Equal(t, []string{"C", "B", "A"}, names)

	recs[0].ParticipantName = "changed"
	assert.Equal(t, "C", r.Records()[0].ParticipantName)
}

func TestRoster_IDFailure(t *testing.T) {
	r := NewRoster(fixedClock{t: testNow}, failingIDs{})

	_, ok, err := r.Add(payload("Ana"), "Curso")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "generate record id"))
	assert.Zero(t, r.Len())
}

func TestULIDGen_Sorted(t *testing.T) {
	g := newULIDGen()
	prev := ""
	for i := 0; i < 50; i++ {
		id, err := g.New()
		require.NoError(t, err)
		assert.Len(t, id, 26)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestBuildRosterView(t *testing.T) {
	var thumbs thumbnails

	empty := buildRosterView(nil, &thumbs)
	assert.False(t, empty.ExportEnabled)
	assert.Equal(t, MsgEmptyRoster, empty.EmptyMessage)
	assert.NotNil(t, empty.Rows)

	recs := []Record{{
		ID:                  "id-001",
		CourseName:          "Curso",
		TrainingDate:        "2026-03-05",
		ParticipantName:     "Ana",
		ParticipantPosition: "Operario",
		ParticipantEmpresa:  "ACME",
		Signature:           []byte("not a png"),
	}}
	v := buildRosterView(recs, &thumbs)
	require.Len(t, v.Rows, 1)
	assert.True(t, v.ExportEnabled)
	assert.Empty(t, v.EmptyMessage)
	assert.Equal(t, 1, v.Total)
	assert.Equal(t, RowView{
		ID:              "id-001",
		CourseName:      "Curso",
		ParticipantName: "Ana",
		Detail:          "Operario - ACME",
		TrainingDate:    "2026-03-05",
		Thumbnail:       dataURL([]byte("not a png")),
	}, v.Rows[0])
}
