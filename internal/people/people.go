// Package people keeps the cast and crew names that get their own sitemap page.
package people

import (
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/scenestill/internal/catalog"
	"github.com/dbsmedya/scenestill/internal/tmdb"
)

// Role is the credit a person is listed under.
type Role string

const (
	RoleDirector        Role = "Director"
	RoleCinematographer Role = "Cinematographer"
	RoleActor           Role = "Actor"
)

// TMDB crew jobs that map to a role.
const (
	JobDirector              = "Director"
	JobDirectorOfPhotography = "Director of Photography"
)

// Catalog columns used when people come from the CSV instead of TMDB.
const (
	ColumnDirector        = "Director"
	ColumnCinematographer = "Cinematographer"
	ColumnCast            = "Cast"
)

// Person is one unique name with its first-seen role.
type Person struct {
	Name string
	Role Role
}

// Registry maps name to role, keeping first-seen order.
// The first role recorded for a name wins.
type Registry struct {
	roles *orderedmap.OrderedMap[string, Role]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{roles: orderedmap.NewOrderedMap[string, Role]()}
}

// Add records name under role unless the name is blank or already known.
// It reports whether the name was new.
func (r *Registry) Add(name string, role Role) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if _, exists := r.Role(name); exists {
		return false
	}
	r.roles.Set(name, role)
	return true
}

// AddCredits scans one movie: crew first (directors and directors of
// photography), then the first castLimit cast members as actors. List
// order is the API's.
func (r *Registry) AddCredits(movie *tmdb.Movie, castLimit int) int {
	if movie == nil {
		return 0
	}

	added := 0
	for _, member := range movie.Credits.Crew {
		switch member.Job {
		case JobDirector:
			if r.Add(member.Name, RoleDirector) {
				added++
			}
		case JobDirectorOfPhotography:
			if r.Add(member.Name, RoleCinematographer) {
				added++
			}
		}
	}

	cast := movie.Credits.Cast
	if castLimit >= 0 && len(cast) > castLimit {
		cast = cast[:castLimit]
	}
	for _, member := range cast {
		if r.Add(member.Name, RoleActor) {
			added++
		}
	}
	return added
}

// AddCatalogRow reads people straight from a catalog row: the Director and
// Cinematographer columns, then the pipe-separated Cast column.
func (r *Registry) AddCatalogRow(row catalog.Row) int {
	added := 0
	if r.Add(row.Value(ColumnDirector), RoleDirector) {
		added++
	}
	if r.Add(row.Value(ColumnCinematographer), RoleCinematographer) {
		added++
	}
	for _, actor := range strings.Split(row.Value(ColumnCast), "|") {
		if r.Add(strings.TrimSpace(actor), RoleActor) {
			added++
		}
	}
	return added
}

// Role returns the recorded role for name.
func (r *Registry) Role(name string) (Role, bool) {
	return r.roles.Get(name)
}

// Len returns the number of unique people.
func (r *Registry) Len() int {
	return r.roles.Len()
}

// People returns everyone in first-seen order.
func (r *Registry) People() []Person {
	out := make([]Person, 0, r.roles.Len())
	for el := r.roles.Front(); el != nil; el = el.Next() {
		out = append(out, Person{Name: el.Key, Role: el.Value})
	}
	return out
}

// CountByRole tallies people per role.
func (r *Registry) CountByRole() map[Role]int {
	counts := make(map[Role]int, 3)
	for el := r.roles.Front(); el != nil; el = el.Next() {
		counts[el.Value]++
	}
	return counts
}
