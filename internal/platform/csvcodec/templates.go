package csvcodec

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrUnknownTemplate = errors.New("unknown template kind")

const (
	KindPlayers    = "players"
	KindVolunteers = "volunteers"
	KindFamilies   = "families"
	KindWorkbond   = "workbond"
)

// TemplateSpec is a fixed header list plus one illustrative row.
type TemplateSpec struct {
	Kind    string
	Headers []string
	Sample  []string
}

var templates = map[string]TemplateSpec{
	KindPlayers: {
		Kind: KindPlayers,
		Headers: []string{
			"first_name", "last_name", "birth_date", "gender", "division",
			"primary_guardian_name", "primary_guardian_email", "primary_guardian_phone",
			"is_new_player", "is_travel_player", "payment_received", "medical_notes",
		},
		Sample: []string{
			"Maya", "Rivera", "2016-04-12", "F", "10U",
			"Rivera, Ana", "ana.rivera@example.com", "555-0142",
			"true", "false", "true", `Carries an inhaler, "rescue" only`,
		},
	},
	KindVolunteers: {
		Kind: KindVolunteers,
		Headers: []string{
			"name", "email", "phone", "role", "interested_roles", "division",
			"primary_guardian_email", "training_completed", "background_check_status",
		},
		Sample: []string{
			"Ana Rivera", "ana.rivera@example.com", "555-0142", "", "Manager; Assistant Coach, Team Parent", "10U",
			"ana.rivera@example.com", "false", "pending",
		},
	},
	KindFamilies: {
		Kind: KindFamilies,
		Headers: []string{
			"primary_guardian_name", "primary_guardian_email", "primary_guardian_phone",
			"secondary_guardian_name", "secondary_guardian_email", "secondary_guardian_phone",
			"address", "workbond_exempt", "workbond_note",
		},
		Sample: []string{
			"Rivera, Ana", "ana.rivera@example.com", "555-0142",
			"Rivera, Luis", "luis.rivera@example.com", "555-0143",
			"12 Oak St, Springfield", "false", "",
		},
	},
	KindWorkbond: {
		Kind:    KindWorkbond,
		Headers: []string{"shift_name", "location", "starts_at", "ends_at", "hours", "capacity"},
		Sample:  []string{"Concession stand", "Field 2, North Complex", "2026-04-18T09:00:00Z", "2026-04-18T12:00:00Z", "3", "4"},
	},
}

// Template returns the template for kind.
func Template(kind string) (TemplateSpec, error) {
	spec, ok := templates[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return TemplateSpec{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, kind)
	}
	return spec, nil
}

func TemplateKinds() []string {
	out := make([]string, 0, len(templates))
	for k := range templates {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FileName is the download name, e.g. "players-import-template.csv".
func (s TemplateSpec) FileName() string {
	return s.Kind + "-import-template.csv"
}

// CSV renders the header line and the sample line.
func (s TemplateSpec) CSV() string {
	return EncodeString(s.Headers, []Row{RowFromValues(s.Headers, s.Sample)})
}

// ReportFileName returns "<entity>-report-<YYYY-MM-DD>.<ext>".
func ReportFileName(entity string, at time.Time, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "csv"
	}
	return fmt.Sprintf("%s-report-%s.%s", entity, at.Format(time.DateOnly), ext)
}
