package diploma

import "strings"

// Kind is the diploma family requested by the user. The modal custom id
// encodes it as a suffix, which ParseModalID recovers before dispatch.
type Kind string

const (
	Therapist  Kind = "therapist"
	Surgeon    Kind = "surgeon"
	Specialist Kind = "specialist"
)

const modalIDPrefix = "diploma_modal_"

var kinds = map[Kind]struct {
	title    string
	template string
	button   string
}{
	Therapist:  {title: "Отримати диплом Терапевта", template: "diploma-therapevt.png", button: "btn_diploma_therapist"},
	Surgeon:    {title: "Отримати диплом Хірурга", template: "diploma-xiryrh.png", button: "btn_diploma_surgeon"},
	Specialist: {title: "Отримати диплом Спеціаліста", template: "diploma-specialist.png", button: "btn_diploma_specialist"},
}

// ParseModalID extracts the kind from a modal custom id. An unknown suffix
// falls back to Therapist, mirroring the historical default.
func ParseModalID(customID string) (Kind, bool) {
	if !strings.HasPrefix(customID, modalIDPrefix) {
		return "", false
	}

	kind := Kind(strings.TrimPrefix(customID, modalIDPrefix))
	if _, ok := kinds[kind]; !ok {
		return Therapist, true
	}
	return kind, true
}

// ModalID builds the form discriminator carrying the kind.
func ModalID(kind Kind) string {
	return modalIDPrefix + string(kind)
}

// ParseButtonID maps a panel button custom id to its kind.
func ParseButtonID(customID string) (Kind, bool) {
	for kind, meta := range kinds {
		if meta.button == customID {
			return kind, true
		}
	}
	return "", false
}

func (k Kind) ModalTitle() string {
	if meta, ok := kinds[k]; ok {
		return meta.title
	}
	return kinds[Therapist].title
}

// TemplateFile is the background asset name for this family.
func (k Kind) TemplateFile() string {
	if meta, ok := kinds[k]; ok {
		return meta.template
	}
	return kinds[Therapist].template
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

func (k Kind) String() string { return string(k) }

// ButtonIDs lists the three panel button discriminators in display order.
func ButtonIDs() []string {
	return []string{
		kinds[Therapist].button,
		kinds[Surgeon].button,
		kinds[Specialist].button,
	}
}
