package domain

import (
	"errors"
	"strings"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrCatalogEmptyID     = errors.New("catalog habit id cannot be empty")
	ErrCatalogDuplicateID = errors.New("catalog habit id must be unique")
	ErrCatalogEmpty       = errors.New("catalog must contain at least one habit")
)

const DefaultIcon = "circle"

// Habit is a catalog entry merged into live state. Completed only describes
// the current calendar day.
type Habit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Completed bool   `json:"completed"`
}

// Catalog is the compiled-in, ordered list of habit definitions.
type Catalog struct {
	habits []Habit
	index  map[string]int
}

func NewCatalog(habits ...Habit) (*Catalog, error) {
	if len(habits) == 0 {
		return nil, ErrCatalogEmpty
	}

	c := &Catalog{
		habits: make([]Habit, 0, len(habits)),
		index:  make(map[string]int, len(habits)),
	}

	for _, h := range habits {
		id := strings.TrimSpace(h.ID)
		if id == "" {
			return nil, ErrCatalogEmptyID
		}
		if _, exists := c.index[id]; exists {
			return nil, ErrCatalogDuplicateID
		}

		icon := h.Icon
		if icon == "" {
			icon = DefaultIcon
		}

		c.index[id] = len(c.habits)
		c.habits = append(c.habits, Habit{ID: id, Name: strings.TrimSpace(h.Name), Icon: icon})
	}

	return c, nil
}

func MustCatalog(habits ...Habit) *Catalog {
	c, err := NewCatalog(habits...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog is the habit set shipped with the widget.
func DefaultCatalog() *Catalog {
	return MustCatalog(
		Habit{ID: "coding", Name: "Coding (DSA/Dev)", Icon: "code"},
		Habit{ID: "reading", Name: "Read 30 Mins", Icon: "book-open"},
		Habit{ID: "building", Name: "Build Project", Icon: "hammer"},
		Habit{ID: "visualize", Name: "Visualize/Meditation", Icon: "eye"},
		Habit{ID: "health", Name: "Workout/Health", Icon: "activity"},
		Habit{ID: "industry", Name: "Industry (Work Hard)", Icon: "briefcase"},
	)
}

// Defaults returns fresh, uncompleted copies in catalog order.
func (c *Catalog) Defaults() []Habit {
	out := make([]Habit, len(c.habits))
	copy(out, c.habits)
	for i := range out {
		out[i].Completed = false
	}
	return out
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Catalog) Get(id string) (Habit, bool) {
	i, ok := c.index[id]
	if !ok {
		return Habit{}, false
	}
	return c.habits[i], true
}

func (c *Catalog) Len() int {
	return len(c.habits)
}
