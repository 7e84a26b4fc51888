package announcement

// Announcement type constants
const (
	TypeInfo    = "info"
	TypeEvent   = "event"
	TypeSponsor = "sponsor"
)

// Announcement is a news item shown on the home screen.
type Announcement struct {
	ID        string
	Title     string
	Content   string // markdown
	ImageURL  string
	CreatedAt string // ISO calendar date
	Type      string
}

// Label returns the pt-BR badge text for the announcement type.
func (a *Announcement) Label() string {
	switch a.Type {
	case TypeEvent:
		return "Evento"
	case TypeSponsor:
		return "Patrocinador"
	default:
		return "Info"
	}
}
