package csvio

import "github.com/classgrid/SmartClassGrid/pkg/model"

// SampleData builds a small demo dataset with compatible rooms,
// courses, and faculty. Handy for smoke runs without input files.
func SampleData() ([]*model.Course, []*model.Room, []*model.Faculty) {
	rooms := []*model.Room{
		{
			ID: "R101", Name: "Room 101", Capacity: 150,
			Type: model.Classroom, Building: "Main Building", Floor: 1,
			Equipment: []string{"projector", "computer", "whiteboard"},
			Features:  []string{"acoustic_panels"},
			AcousticsRating: 0.9, LightingRating: 0.8, AccessibilityRating: 1.0,
		},
		{
			ID: "LAB201", Name: "Computer Lab 201", Capacity: 40,
			Type: model.ComputerLab, Building: "Technology Building", Floor: 2,
			Equipment: []string{"computers", "software", "network", "projector"},
			Features:  []string{"air_conditioning"},
			AcousticsRating: 0.85, LightingRating: 0.9, AccessibilityRating: 0.8,
		},
		{
			ID: "LAB301", Name: "Physics Lab 301", Capacity: 30,
			Type: model.LabRoom, Building: "Science Building", Floor: 3,
			Equipment: []string{"lab_equipment", "safety_gear", "fume_hood"},
			Features:  []string{"ventilation"},
			AcousticsRating: 0.8, LightingRating: 0.7, AccessibilityRating: 0.9,
		},
		{
			ID: "SEM101", Name: "Seminar Room 101", Capacity: 50,
			Type: model.SeminarRoom, Building: "Main Building", Floor: 1,
			Equipment: []string{"projector", "whiteboard"},
			Features:  []string{"conference_setup"},
			AcousticsRating: 0.9, LightingRating: 0.8, AccessibilityRating: 1.0,
		},
	}

	courses := []*model.Course{
		{
			ID: "CS101", Name: "Introduction to Computer Science", Code: "CS101",
			Duration: 2, Type: model.Lecture, Capacity: 120,
			FacultyID: "F001", Department: "Computer Science", Semester: 1, Credits: 3,
			PreferredDays:     []string{"Monday", "Wednesday"},
			PreferredTimes:    []string{"10:00", "11:00"},
			RequiredEquipment: []string{"projector", "computer"},
			RoomTypeRequired:  "classroom",
		},
		{
			ID: "CS102", Name: "Programming Lab", Code: "CS102",
			Duration: 3, Type: model.Lab, Capacity: 30,
			FacultyID: "F002", Department: "Computer Science", Semester: 1, Credits: 2,
			PreferredDays:     []string{"Tuesday", "Thursday"},
			PreferredTimes:    []string{"14:00", "15:00", "16:00"},
			RequiredEquipment: []string{"computers", "software"},
			RoomTypeRequired:  "computer_lab",
			ConsecutiveHours:  true,
		},
		{
			ID: "MATH201", Name: "Calculus II", Code: "MATH201",
			Duration: 1, Type: model.Lecture, Capacity: 80,
			FacultyID: "F003", Department: "Mathematics", Semester: 2, Credits: 4,
			PreferredDays:     []string{"Monday", "Wednesday", "Friday"},
			PreferredTimes:    []string{"09:00"},
			RequiredEquipment: []string{"whiteboard"},
			RoomTypeRequired:  "classroom",
		},
		{
			ID: "ENG101", Name: "Technical Writing", Code: "ENG101",
			Duration: 1, Type: model.Seminar, Capacity: 40,
			FacultyID: "F005", Department: "English", Semester: 1, Credits: 2,
			PreferredDays:     []string{"Friday"},
			PreferredTimes:    []string{"11:00"},
			RequiredEquipment: []string{"projector"},
			RoomTypeRequired:  "seminar_room",
		},
	}

	faculty := []*model.Faculty{
		{
			ID: "F001", Name: "Dr. Alice Smith", Department: "Computer Science",
			Email: "alice.smith@university.edu", MaxTeachingHours: 20,
			PreferredDays:              []string{"Monday", "Wednesday", "Friday"},
			PreferredTimes:             []string{"10:00", "11:00"},
			UnavailableSlots:           map[string][]string{"Tuesday": {"08:00", "09:00"}},
			ConsecutiveClassPreference: true,
			BreakDuration:              1,
		},
		{
			ID: "F002", Name: "Prof. Bob Johnson", Department: "Computer Science",
			Email: "bob.johnson@university.edu", MaxTeachingHours: 18,
			PreferredDays:  []string{"Tuesday", "Thursday"},
			PreferredTimes: []string{"14:00", "15:00", "16:00"},
			BreakDuration:  1,
		},
		{
			ID: "F003", Name: "Dr. Charlie Nguyen", Department: "Mathematics",
			Email: "charlie.nguyen@university.edu", MaxTeachingHours: 22,
			PreferredDays:              []string{"Monday", "Wednesday", "Friday"},
			PreferredTimes:             []string{"09:00", "10:00"},
			UnavailableSlots:           map[string][]string{"Friday": {"08:00"}},
			ConsecutiveClassPreference: true,
			BreakDuration:              1,
		},
		{
			ID: "F004", Name: "Dr. Diana Evans", Department: "Physics",
			Email: "diana.evans@university.edu", MaxTeachingHours: 15,
			PreferredDays:              []string{"Thursday"},
			PreferredTimes:             []string{"13:00", "14:00"},
			ConsecutiveClassPreference: true,
			BreakDuration:              1,
		},
		{
			ID: "F005", Name: "Prof. Ethan Kim", Department: "English",
			Email: "ethan.kim@university.edu", MaxTeachingHours: 18,
			PreferredDays:  []string{"Friday"},
			PreferredTimes: []string{"11:00"},
			BreakDuration:  1,
		},
	}

	for _, room := range rooms {
		room.ResetAvailability()
	}
	for _, f := range faculty {
		f.ResetAssignments()
	}
	return courses, rooms, faculty
}
