package model

import (
	"errors"
	"fmt"
)

var (
	ErrNoCourses      = errors.New("no courses provided")
	ErrNoRooms        = errors.New("no rooms provided")
	ErrNoFaculty      = errors.New("no faculty provided")
	ErrUnknownFaculty = errors.New("course references unknown faculty")
)

// ResourcePool owns all mutable Room and Faculty state. Every pipeline
// stage receives the same pool and mutates the live objects in place;
// callers serialize stage invocation and Reset between independent runs.
type ResourcePool struct {
	Courses []*Course
	Rooms   []*Room
	Faculty []*Faculty

	roomsByID   map[string]*Room
	facultyByID map[string]*Faculty
}

// NewResourcePool validates the input collections and initializes all
// availability state. Fails fast before any algorithm runs.
func NewResourcePool(courses []*Course, rooms []*Room, faculty []*Faculty) (*ResourcePool, error) {
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	if len(faculty) == 0 {
		return nil, ErrNoFaculty
	}

	pool := &ResourcePool{
		Courses:     courses,
		Rooms:       rooms,
		Faculty:     faculty,
		roomsByID:   make(map[string]*Room, len(rooms)),
		facultyByID: make(map[string]*Faculty, len(faculty)),
	}
	for _, r := range rooms {
		pool.roomsByID[r.ID] = r
	}
	for _, f := range faculty {
		pool.facultyByID[f.ID] = f
	}
	for _, c := range courses {
		if _, ok := pool.facultyByID[c.FacultyID]; !ok {
			return nil, fmt.Errorf("course %s: %w: %s", c.Code, ErrUnknownFaculty, c.FacultyID)
		}
	}

	pool.Reset()
	return pool, nil
}

func (p *ResourcePool) RoomByID(id string) *Room {
	return p.roomsByID[id]
}

func (p *ResourcePool) FacultyByID(id string) *Faculty {
	return p.facultyByID[id]
}

// Reset clears every availability grid and assignment tracker.
func (p *ResourcePool) Reset() {
	for _, r := range p.Rooms {
		r.ResetAvailability()
	}
	for _, f := range p.Faculty {
		f.ResetAssignments()
	}
}

// Apply reserves room and faculty slots for every entry in the schedule.
// Used to rebuild pool state from a set of committed assignments.
func (p *ResourcePool) Apply(schedule *Schedule) {
	for _, entry := range schedule.Entries {
		entry.Room.ReserveSlot(entry.Day, entry.Time, entry.Duration)
		entry.Faculty.AssignSlot(entry.Day, entry.Time, entry.Duration)
	}
}

// Snapshot captures the full mutable state. Deep copy, so a later
// Restore undoes everything applied in between.
type Snapshot struct {
	rooms map[string]map[string]map[string]bool
	slots map[string]map[string][]string
	hours map[string]int
}

func (p *ResourcePool) Snapshot() *Snapshot {
	snap := &Snapshot{
		rooms: make(map[string]map[string]map[string]bool, len(p.Rooms)),
		slots: make(map[string]map[string][]string, len(p.Faculty)),
		hours: make(map[string]int, len(p.Faculty)),
	}
	for _, r := range p.Rooms {
		grid := make(map[string]map[string]bool, len(r.Availability))
		for day, times := range r.Availability {
			copied := make(map[string]bool, len(times))
			for t, free := range times {
				copied[t] = free
			}
			grid[day] = copied
		}
		snap.rooms[r.ID] = grid
	}
	for _, f := range p.Faculty {
		assigned := make(map[string][]string, len(f.AssignedSlots))
		for day, times := range f.AssignedSlots {
			assigned[day] = append([]string(nil), times...)
		}
		snap.slots[f.ID] = assigned
		snap.hours[f.ID] = f.CurrentTeachingHours
	}
	return snap
}

// Restore rewinds the pool to a previous Snapshot.
func (p *ResourcePool) Restore(snap *Snapshot) {
	for _, r := range p.Rooms {
		grid := snap.rooms[r.ID]
		r.Availability = make(map[string]map[string]bool, len(grid))
		for day, times := range grid {
			copied := make(map[string]bool, len(times))
			for t, free := range times {
				copied[t] = free
			}
			r.Availability[day] = copied
		}
	}
	for _, f := range p.Faculty {
		assigned := snap.slots[f.ID]
		f.AssignedSlots = make(map[string][]string, len(assigned))
		for day, times := range assigned {
			f.AssignedSlots[day] = append([]string(nil), times...)
		}
		f.CurrentTeachingHours = snap.hours[f.ID]
	}
}
