package csvio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// listSep separates multi-valued cells (preferred days, equipment) in
// one CSV column.
const listSep = "|"

// courseCSV mirrors one row of courses.csv. List-valued columns arrive
// pipe separated and are expanded during conversion.
type courseCSV struct {
	ID         string  `csv:"id"`
	Name       string  `csv:"name"`
	Code       string  `csv:"code"`
	Duration   int     `csv:"duration"`
	Type       string  `csv:"course_type"`
	Capacity   int     `csv:"capacity"`
	FacultyID  string  `csv:"faculty_id"`
	Department string  `csv:"department"`
	Semester   int     `csv:"semester"`
	Credits    int     `csv:"credits"`
	Days       string  `csv:"preferred_days"`
	Times      string  `csv:"preferred_times"`
	Equipment  string  `csv:"required_equipment"`
	RoomType   string  `csv:"room_type_required"`
	Consec     bool    `csv:"consecutive_hours"`
	FacultyW   float64 `csv:"faculty_preference_score"`
	RoomW      float64 `csv:"room_preference_score"`
	TimeW      float64 `csv:"time_preference_score"`
}

type roomCSV struct {
	ID            string  `csv:"id"`
	Name          string  `csv:"name"`
	Capacity      int     `csv:"capacity"`
	Type          string  `csv:"room_type"`
	Building      string  `csv:"building"`
	Floor         int     `csv:"floor"`
	Equipment     string  `csv:"equipment"`
	Features      string  `csv:"features"`
	Acoustics     float64 `csv:"acoustics_rating"`
	Lighting      float64 `csv:"lighting_rating"`
	Accessibility float64 `csv:"accessibility_rating"`
}

// facultyCSV flattens unavailable slots into Day@Time tokens, e.g.
// "Monday@08:00|Friday@16:00".
type facultyCSV struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Department  string `csv:"department"`
	Email       string `csv:"email"`
	MaxHours    int    `csv:"max_teaching_hours"`
	Days        string `csv:"preferred_days"`
	Times       string `csv:"preferred_times"`
	Unavailable string `csv:"unavailable_slots"`
	Consec      bool   `csv:"consecutive_class_preference"`
	BreakDur    int    `csv:"break_duration_required"`
}

func setDelimiter(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		return r
	})
}

// LoadCourses reads and parses the given csv file for course data.
func LoadCourses(path string, delim rune) ([]*model.Course, error) {
	setDelimiter(delim)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open courses file: %w", err)
	}
	defer file.Close()

	rows := []*courseCSV{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	courses := make([]*model.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, &model.Course{
			ID:                      row.ID,
			Name:                    row.Name,
			Code:                    row.Code,
			Duration:                row.Duration,
			Type:                    model.CourseType(row.Type),
			Capacity:                row.Capacity,
			FacultyID:               row.FacultyID,
			Department:              row.Department,
			Semester:                row.Semester,
			Credits:                 row.Credits,
			PreferredDays:           splitList(row.Days),
			PreferredTimes:          splitList(row.Times),
			RequiredEquipment:       splitList(row.Equipment),
			RoomTypeRequired:        row.RoomType,
			ConsecutiveHours:        row.Consec,
			FacultyPreferenceWeight: row.FacultyW,
			RoomPreferenceWeight:    row.RoomW,
			TimePreferenceWeight:    row.TimeW,
		})
	}
	return courses, nil
}

// LoadRooms reads and parses the given csv file for room data.
func LoadRooms(path string, delim rune) ([]*model.Room, error) {
	setDelimiter(delim)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rooms file: %w", err)
	}
	defer file.Close()

	rows := []*roomCSV{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	rooms := make([]*model.Room, 0, len(rows))
	for _, row := range rows {
		room := &model.Room{
			ID:                  row.ID,
			Name:                row.Name,
			Capacity:            row.Capacity,
			Type:                model.RoomType(row.Type),
			Building:            row.Building,
			Floor:               row.Floor,
			Equipment:           splitList(row.Equipment),
			Features:            splitList(row.Features),
			AcousticsRating:     row.Acoustics,
			LightingRating:      row.Lighting,
			AccessibilityRating: row.Accessibility,
		}
		room.ResetAvailability()
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// LoadFaculty reads and parses the given csv file for faculty data.
func LoadFaculty(path string, delim rune) ([]*model.Faculty, error) {
	setDelimiter(delim)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open faculty file: %w", err)
	}
	defer file.Close()

	rows := []*facultyCSV{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	faculty := make([]*model.Faculty, 0, len(rows))
	for _, row := range rows {
		unavailable, err := parseUnavailable(row.Unavailable)
		if err != nil {
			return nil, fmt.Errorf("faculty %s: %w", row.ID, err)
		}
		f := &model.Faculty{
			ID:                         row.ID,
			Name:                       row.Name,
			Department:                 row.Department,
			Email:                      row.Email,
			MaxTeachingHours:           row.MaxHours,
			PreferredDays:              splitList(row.Days),
			PreferredTimes:             splitList(row.Times),
			UnavailableSlots:           unavailable,
			ConsecutiveClassPreference: row.Consec,
			BreakDuration:              row.BreakDur,
		}
		f.ResetAssignments()
		faculty = append(faculty, f)
	}
	return faculty, nil
}

// LoadPoolJSON reads a single JSON document holding courses, rooms, and
// faculty together, the format the HTTP API accepts.
func LoadPoolJSON(path string) ([]*model.Course, []*model.Room, []*model.Faculty, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open input file: %w", err)
	}

	var doc struct {
		Courses []*model.Course  `json:"courses"`
		Rooms   []*model.Room    `json:"rooms"`
		Faculty []*model.Faculty `json:"faculty"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, room := range doc.Rooms {
		room.ResetAvailability()
	}
	for _, f := range doc.Faculty {
		f.ResetAssignments()
	}
	return doc.Courses, doc.Rooms, doc.Faculty, nil
}

func splitList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, listSep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseUnavailable expands Day@Time tokens into the per-day blackout map.
func parseUnavailable(cell string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, token := range splitList(cell) {
		day, t, ok := strings.Cut(token, "@")
		if !ok {
			return nil, fmt.Errorf("malformed unavailable slot %q, want Day@HH:MM", token)
		}
		if model.DayIndex(day) < 0 {
			return nil, fmt.Errorf("unknown day %q in unavailable slot", day)
		}
		out[day] = append(out[day], t)
	}
	return out, nil
}
