package diploma

import "testing"

func TestParseModalID(t *testing.T) {
	cases := []struct {
		customID string
		want     Kind
		ok       bool
	}{
		{"diploma_modal_therapist", Therapist, true},
		{"diploma_modal_surgeon", Surgeon, true},
		{"diploma_modal_specialist", Specialist, true},
		{"diploma_modal_unknown", Therapist, true},
		{"op_report_modal", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseModalID(tc.customID)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseModalID(%q) = (%q, %v), want (%q, %v)", tc.customID, got, ok, tc.want, tc.ok)
		}
	}
}

func TestModalIDRoundTrip(t *testing.T) {
	for _, kind := range []Kind{Therapist, Surgeon, Specialist} {
		got, ok := ParseModalID(ModalID(kind))
		if !ok || got != kind {
			t.Errorf("round trip for %q = (%q, %v)", kind, got, ok)
		}
	}
}

func TestParseButtonID(t *testing.T) {
	if kind, ok := ParseButtonID("btn_diploma_surgeon"); !ok || kind != Surgeon {
		t.Errorf("ParseButtonID(btn_diploma_surgeon) = (%q, %v)", kind, ok)
	}
	if _, ok := ParseButtonID("btn_create_report"); ok {
		t.Error("ParseButtonID should reject non-diploma buttons")
	}
}

func TestTemplateFile(t *testing.T) {
	if got := Surgeon.TemplateFile(); got != "diploma-xiryrh.png" {
		t.Errorf("TemplateFile = %q", got)
	}
	if got := Kind("bogus").TemplateFile(); got != "diploma-therapevt.png" {
		t.Errorf("unknown kind should fall back to therapist template, got %q", got)
	}
}
