// internal/models/settings.go
package models

import "encoding/json"

// Settings is the single remote document governing site branding and copy.
// It is fetched whole, edited field by field, and written back whole.
type Settings struct {
	Logo                   string        `json:"logo,omitempty"`
	LandingPageImage       string        `json:"landingPageImage,omitempty"`
	LandingPageTitle       LocalizedText `json:"landingPageTitle"`
	LandingPageDescription LocalizedText `json:"landingPageDescription"`
	Sections               Sections      `json:"sections"`
	Notification           Notification  `json:"notification"`
}

type Sections struct {
	Contact      ContactSection      `json:"contact"`
	WorkingHours WorkingHoursSection `json:"workingHours"`
}

type ContactSection struct {
	Address LocalizedText `json:"address"`
	Phone   LocalizedText `json:"phone"`
	Email   LocalizedText `json:"email"`
}

type WorkingHoursSection struct {
	Weekdays LocalizedText `json:"weekdays"`
	Saturday LocalizedText `json:"saturday"`
	Sunday   LocalizedText `json:"sunday"`
}

type Notification struct {
	Text     LocalizedText `json:"text"`
	IsActive bool          `json:"isActive"`
}

// DefaultSettings returns a document with every bilingual leaf present and
// empty. Merging a server response into it never leaves a field undefined.
func DefaultSettings() Settings {
	return Settings{
		LandingPageTitle:       emptyLocalizedText(),
		LandingPageDescription: emptyLocalizedText(),
		Sections: Sections{
			Contact: ContactSection{
				Address: emptyLocalizedText(),
				Phone:   emptyLocalizedText(),
				Email:   emptyLocalizedText(),
			},
			WorkingHours: WorkingHoursSection{
				Weekdays: emptyLocalizedText(),
				Saturday: emptyLocalizedText(),
				Sunday:   emptyLocalizedText(),
			},
		},
		Notification: Notification{Text: emptyLocalizedText()},
	}
}

// Merge overlays a raw server response field by field. The merge is deep:
// a leaf absent from the response keeps its current value, and every
// LocalizedText ends up with both language keys present.
func (s *Settings) Merge(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, s); err != nil {
		return err
	}
	s.normalize()
	return nil
}

// normalize restores language keys that a null field in the response may
// have wiped out.
func (s *Settings) normalize() {
	for _, t := range s.localizedLeaves() {
		if *t == nil {
			*t = emptyLocalizedText()
			continue
		}
		for _, lang := range SupportedLanguages {
			if _, ok := (*t)[lang]; !ok {
				(*t)[lang] = ""
			}
		}
	}
}

// Clone returns an independent deep copy.
func (s Settings) Clone() Settings {
	out := s
	out.LandingPageTitle = s.LandingPageTitle.Clone()
	out.LandingPageDescription = s.LandingPageDescription.Clone()
	out.Sections.Contact.Address = s.Sections.Contact.Address.Clone()
	out.Sections.Contact.Phone = s.Sections.Contact.Phone.Clone()
	out.Sections.Contact.Email = s.Sections.Contact.Email.Clone()
	out.Sections.WorkingHours.Weekdays = s.Sections.WorkingHours.Weekdays.Clone()
	out.Sections.WorkingHours.Saturday = s.Sections.WorkingHours.Saturday.Clone()
	out.Sections.WorkingHours.Sunday = s.Sections.WorkingHours.Sunday.Clone()
	out.Notification.Text = s.Notification.Text.Clone()
	return out
}

// LocalizedField resolves a dotted path such as "sections.contact.phone" to
// its bilingual leaf. The bool reports whether the path names one.
func (s *Settings) LocalizedField(path string) (LocalizedText, bool) {
	switch path {
	case "landingPageTitle":
		return s.LandingPageTitle, true
	case "landingPageDescription":
		return s.LandingPageDescription, true
	case "sections.contact.address":
		return s.Sections.Contact.Address, true
	case "sections.contact.phone":
		return s.Sections.Contact.Phone, true
	case "sections.contact.email":
		return s.Sections.Contact.Email, true
	case "sections.workingHours.weekdays":
		return s.Sections.WorkingHours.Weekdays, true
	case "sections.workingHours.saturday":
		return s.Sections.WorkingHours.Saturday, true
	case "sections.workingHours.sunday":
		return s.Sections.WorkingHours.Sunday, true
	case "notification.text":
		return s.Notification.Text, true
	}
	return nil, false
}

func (s *Settings) localizedLeaves() []*LocalizedText {
	return []*LocalizedText{
		&s.LandingPageTitle,
		&s.LandingPageDescription,
		&s.Sections.Contact.Address,
		&s.Sections.Contact.Phone,
		&s.Sections.Contact.Email,
		&s.Sections.WorkingHours.Weekdays,
		&s.Sections.WorkingHours.Saturday,
		&s.Sections.WorkingHours.Sunday,
		&s.Notification.Text,
	}
}
