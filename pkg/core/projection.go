package core

import "strings"

// Projection is the read-only view derived from a collection and a query.
type Projection struct {
	Active   []Note `json:"active"`
	Archived []Note `json:"archived"`
	IsEmpty  bool   `json:"isEmpty"`
}

// Project filters notes by query and partitions the matches into active and
// archived, keeping collection order inside each partition.
// It has no side effects: equal inputs give equal outputs.
func Project(notes []Note, query string) Projection {
	p := Projection{
		Active:   make([]Note, 0, len(notes)),
		Archived: make([]Note, 0),
	}
	q := strings.ToLower(query)
	for _, n := range notes {
		if !matchesLower(n, q) {
			continue
		}
		if n.Archived {
			p.Archived = append(p.Archived, n)
		} else {
			p.Active = append(p.Active, n)
		}
	}
	p.IsEmpty = len(p.Active) == 0 && len(p.Archived) == 0
	return p
}

// Matches reports whether a note matches query: a case-insensitive substring
// of the title or of the body. The empty query matches everything.
func Matches(n Note, query string) bool {
	return matchesLower(n, strings.ToLower(query))
}

func matchesLower(n Note, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Body), q)
}

// EmptyMessage is the hint shown when the projection has nothing to display.
func (p Projection) EmptyMessage(query string) string {
	if !p.IsEmpty {
		return ""
	}
	if query != "" {
		return "Try adjusting your search query"
	}
	return "Create your first note to get started"
}
