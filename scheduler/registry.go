package scheduler

import (
	"regexp"
	"sync"

	"github.com/google/uuid"
)

// registry is the set of live tasks, kept in registration order.
// Accessors return copies; a returned slice is detached from later mutation.
type registry struct {
	mu    sync.Mutex
	tasks []*Task
}

func (r *registry) insert(t *Task) {
	r.mu.Lock()
	r.tasks = append(r.tasks, t)
	r.mu.Unlock()
}

// remove splices t out by identity.
// It reports false when t is not registered.
func (r *registry) remove(t *Task) (removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, v := range r.tasks {
		if v == t {
			copy(r.tasks[i:], r.tasks[i+1:])
			r.tasks[len(r.tasks)-1] = nil
			r.tasks = r.tasks[:len(r.tasks)-1]
			return true
		}
	}
	return false
}

func (r *registry) snapshot() []*Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	cloned := make([]*Task, len(r.tasks))
	copy(cloned, r.tasks)
	return cloned
}

func (r *registry) byId(id uuid.UUID) (*Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.tasks {
		if v.id == id {
			return v, true
		}
	}
	return nil, false
}

func (r *registry) byOwnerId(ownerId string) []*Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := make([]*Task, 0)
	for _, v := range r.tasks {
		if v.owner.Id() == ownerId {
			found = append(found, v)
		}
	}
	return found
}

// idByName returns the id of the first task whose name is exactly name.
func (r *registry) idByName(name string) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.tasks {
		if v.name == name {
			return v.id, true
		}
	}
	return uuid.Nil, false
}

func (r *registry) byNamePattern(re *regexp.Regexp) []*Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := make([]*Task, 0)
	for _, v := range r.tasks {
		if re.MatchString(v.name) {
			found = append(found, v)
		}
	}
	return found
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}
