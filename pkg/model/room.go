package model

import "slices"

type RoomType string

const (
	Classroom   RoomType = "classroom"
	LabRoom     RoomType = "lab"
	Auditorium  RoomType = "auditorium"
	SeminarRoom RoomType = "seminar_room"
	ComputerLab RoomType = "computer_lab"
)

type Room struct {
	ID       string   `csv:"id" json:"id"`
	Name     string   `csv:"name" json:"name"`
	Capacity int      `csv:"capacity" json:"capacity"`
	Type     RoomType `csv:"room_type" json:"room_type"`
	Building string   `csv:"building" json:"building"`
	Floor    int      `csv:"floor" json:"floor"`

	Equipment []string `csv:"-" json:"equipment"`
	Features  []string `csv:"-" json:"features"`

	// Availability is the room's sole mutable shared state:
	// day -> time -> free. True means free.
	Availability map[string]map[string]bool `csv:"-" json:"-"`

	AcousticsRating     float64 `csv:"acoustics_rating" json:"acoustics_rating"`
	LightingRating      float64 `csv:"lighting_rating" json:"lighting_rating"`
	AccessibilityRating float64 `csv:"accessibility_rating" json:"accessibility_rating"`
}

// ResetAvailability marks every slot in the grid as free.
func (r *Room) ResetAvailability() {
	r.Availability = make(map[string]map[string]bool, len(Days))
	for _, day := range Days {
		slots := make(map[string]bool, len(Times))
		for _, t := range Times {
			slots[t] = true
		}
		r.Availability[day] = slots
	}
}

// IsAvailable checks the grid for duration consecutive free slots
// starting at (day, time).
func (r *Room) IsAvailable(day string, time string, duration int) bool {
	slots, ok := r.Availability[day]
	if !ok {
		return false
	}
	start := TimeIndex(time)
	if start < 0 {
		return false
	}
	for i := 0; i < duration; i++ {
		if start+i >= len(Times) {
			return false
		}
		if !slots[Times[start+i]] {
			return false
		}
	}
	return true
}

// ReserveSlot marks duration slots starting at (day, time) as occupied.
func (r *Room) ReserveSlot(day string, time string, duration int) {
	slots, ok := r.Availability[day]
	if !ok {
		return
	}
	start := TimeIndex(time)
	if start < 0 {
		return
	}
	for i := 0; i < duration; i++ {
		if start+i < len(Times) {
			slots[Times[start+i]] = false
		}
	}
}

// ReleaseSlot frees duration slots starting at (day, time). Callers moving
// an entry must pair this with a ReserveSlot on the new position.
func (r *Room) ReleaseSlot(day string, time string, duration int) {
	slots, ok := r.Availability[day]
	if !ok {
		return
	}
	start := TimeIndex(time)
	if start < 0 {
		return
	}
	for i := 0; i < duration; i++ {
		if start+i < len(Times) {
			slots[Times[start+i]] = true
		}
	}
}

// UtilizationRate returns the occupied percentage of the grid.
func (r *Room) UtilizationRate() float64 {
	total := 0
	occupied := 0
	for _, slots := range r.Availability {
		for _, free := range slots {
			total++
			if !free {
				occupied++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(occupied) / float64(total) * 100
}

// HasEquipment reports whether every required item is present.
func (r *Room) HasEquipment(required []string) bool {
	for _, eq := range required {
		if !slices.Contains(r.Equipment, eq) {
			return false
		}
	}
	return true
}
