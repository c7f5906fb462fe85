package entity

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Page is an offset/limit window over a list.
type Page struct {
	Offset int
	Limit  int
}

// Normalize clamps the window to sane bounds.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}
