package attendance

import (
	"bytes"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	thumbWidth  = 112
	thumbHeight = 56
)

// RowView is one table line of the roster panel.
type RowView struct {
	ID              string `json:"id"`
	CourseName      string `json:"course_name"`
	ParticipantName string `json:"participant_name"`
	Detail          string `json:"detail"` // "cargo - empresa"
	TrainingDate    string `json:"training_date"`
	Thumbnail       string `json:"thumbnail"` // data URL
}

// thumbnails caches scaled signatures by record id; records never change.
type thumbnails struct {
	mu    sync.Mutex
	cache map[string]string
}

func (t *thumbnails) get(rec Record) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.cache[rec.ID]; ok {
		return v
	}
	v := thumbnail(rec.Signature)
	if t.cache == nil {
		t.cache = make(map[string]string)
	}
	t.cache[rec.ID] = v
	return v
}

// thumbnail fits the signature into the table cell. Anything that fails
// to decode is shown at full size.
func thumbnail(png []byte) string {
	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return dataURL(png)
	}
	small := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, small, imaging.PNG); err != nil {
		return dataURL(png)
	}
	return dataURL(buf.Bytes())
}

func buildRosterView(records []Record, thumbs *thumbnails) RosterResponse {
	out := RosterResponse{
		Rows:          make([]RowView, 0, len(records)),
		Total:         len(records),
		ExportEnabled: len(records) > 0,
	}
	if len(records) == 0 {
		out.EmptyMessage = MsgEmptyRoster
	}
	for _, r := range records {
		out.Rows = append(out.Rows, RowView{
			ID:              r.ID,
			CourseName:      r.CourseName,
			ParticipantName: r.ParticipantName,
			Detail:          r.ParticipantPosition + " - " + r.ParticipantEmpresa,
			TrainingDate:    r.TrainingDate,
			Thumbnail:       thumbs.get(r),
		})
	}
	return out
}
