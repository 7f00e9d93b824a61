package model

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the page to sane bounds: page starts at 1, limit defaults to 20 and
// never exceeds 100.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}
