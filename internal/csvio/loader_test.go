package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCourses(t *testing.T) {
	path := writeFixture(t, "courses.csv",
		"id,name,code,duration,course_type,capacity,faculty_id,department,semester,credits,"+
			"preferred_days,preferred_times,required_equipment,room_type_required,consecutive_hours,"+
			"faculty_preference_score,room_preference_score,time_preference_score\n"+
			"C1,Intro to CS,CS101,2,lecture,120,F001,Computer Science,1,3,"+
			"Monday|Wednesday,10:00|11:00,projector|computer,classroom,false,0.8,0.7,0.9\n"+
			"C2,Programming Lab,CS102,3,lab,30,F002,Computer Science,1,2,"+
			",,computer,computer_lab,true,0.9,0.8,0.7\n")

	courses, err := LoadCourses(path, ',')
	require.NoError(t, err)
	require.Len(t, courses, 2)

	cs101 := courses[0]
	assert.Equal(t, "CS101", cs101.Code)
	assert.Equal(t, 2, cs101.Duration)
	assert.Equal(t, model.Lecture, cs101.Type)
	assert.Equal(t, []string{"Monday", "Wednesday"}, cs101.PreferredDays)
	assert.Equal(t, []string{"projector", "computer"}, cs101.RequiredEquipment)
	assert.InDelta(t, 0.8, cs101.FacultyPreferenceWeight, 1e-9)

	cs102 := courses[1]
	assert.Empty(t, cs102.PreferredDays)
	assert.True(t, cs102.ConsecutiveHours)
}

func TestLoadCoursesCustomDelimiter(t *testing.T) {
	path := writeFixture(t, "courses.csv",
		"id;name;code;duration;course_type;capacity;faculty_id;department;semester;credits;"+
			"preferred_days;preferred_times;required_equipment;room_type_required;consecutive_hours;"+
			"faculty_preference_score;room_preference_score;time_preference_score\n"+
			"C1;Algebra;MATH201;1;lecture;80;F003;Mathematics;2;4;"+
			"Monday|Friday;09:00;whiteboard;classroom;false;0.7;0.6;0.8\n")

	courses, err := LoadCourses(path, ';')
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "MATH201", courses[0].Code)
	assert.Equal(t, []string{"Monday", "Friday"}, courses[0].PreferredDays)
}

func TestLoadRooms(t *testing.T) {
	path := writeFixture(t, "rooms.csv",
		"id,name,capacity,room_type,building,floor,equipment,features,"+
			"acoustics_rating,lighting_rating,accessibility_rating\n"+
			"R101,Main Hall,150,classroom,Science,1,projector|whiteboard,air_conditioning,0.9,0.8,1.0\n")

	rooms, err := LoadRooms(path, ',')
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	room := rooms[0]
	assert.Equal(t, 150, room.Capacity)
	assert.Equal(t, []string{"projector", "whiteboard"}, room.Equipment)
	assert.True(t, room.IsAvailable("Monday", "08:00", 1), "availability grid initialized")
}

func TestLoadFaculty(t *testing.T) {
	path := writeFixture(t, "faculty.csv",
		"id,name,department,email,max_teaching_hours,preferred_days,preferred_times,"+
			"unavailable_slots,consecutive_class_preference,break_duration_required\n"+
			"F001,Dr. Smith,Computer Science,smith@uni.edu,20,Monday|Wednesday,10:00,"+
			"Tuesday@08:00|Tuesday@09:00,true,1\n")

	faculty, err := LoadFaculty(path, ',')
	require.NoError(t, err)
	require.Len(t, faculty, 1)

	f := faculty[0]
	assert.Equal(t, 20, f.MaxTeachingHours)
	assert.Equal(t, []string{"08:00", "09:00"}, f.UnavailableSlots["Tuesday"])
	assert.False(t, f.IsAvailable("Tuesday", "08:00", 1))
	assert.True(t, f.IsAvailable("Monday", "08:00", 1))
}

func TestLoadFacultyMalformedUnavailable(t *testing.T) {
	path := writeFixture(t, "faculty.csv",
		"id,name,department,email,max_teaching_hours,preferred_days,preferred_times,"+
			"unavailable_slots,consecutive_class_preference,break_duration_required\n"+
			"F001,Dr. Smith,CS,smith@uni.edu,20,,,Tuesday-08:00,false,1\n")

	_, err := LoadFaculty(path, ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Day@HH:MM")
}

func TestLoadFacultyUnknownDay(t *testing.T) {
	path := writeFixture(t, "faculty.csv",
		"id,name,department,email,max_teaching_hours,preferred_days,preferred_times,"+
			"unavailable_slots,consecutive_class_preference,break_duration_required\n"+
			"F001,Dr. Smith,CS,smith@uni.edu,20,,,Sunday@08:00,false,1\n")

	_, err := LoadFaculty(path, ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sunday")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadCourses(filepath.Join(t.TempDir(), "nope.csv"), ',')
	assert.Error(t, err)
}

func TestLoadPoolJSON(t *testing.T) {
	path := writeFixture(t, "input.json", `{
  "courses": [
    {"id": "C1", "code": "CS101", "name": "Intro", "duration": 1, "capacity": 30,
     "faculty_id": "F001", "department": "CS"}
  ],
  "rooms": [
    {"id": "R1", "name": "Hall", "capacity": 40, "room_type": "classroom"}
  ],
  "faculty": [
    {"id": "F001", "name": "Dr. Smith", "department": "CS", "max_teaching_hours": 20}
  ]
}`)

	courses, rooms, faculty, err := LoadPoolJSON(path)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Len(t, rooms, 1)
	require.Len(t, faculty, 1)

	assert.Equal(t, "CS101", courses[0].Code)
	assert.True(t, rooms[0].IsAvailable("Friday", "17:00", 1))
	assert.True(t, faculty[0].IsAvailable("Monday", "08:00", 1))

	_, err2 := model.NewResourcePool(courses, rooms, faculty)
	assert.NoError(t, err2, "loaded data forms a valid pool")
}

func TestSampleDataFormsValidPool(t *testing.T) {
	courses, rooms, faculty := SampleData()
	assert.Len(t, courses, 4)
	assert.Len(t, rooms, 4)
	assert.Len(t, faculty, 5)

	pool, err := model.NewResourcePool(courses, rooms, faculty)
	require.NoError(t, err)
	assert.Len(t, pool.Courses, 4)
}

func TestLoadedDanglingFacultySurfaces(t *testing.T) {
	path := writeFixture(t, "courses.csv",
		"id,name,code,duration,course_type,capacity,faculty_id,department,semester,credits,"+
			"preferred_days,preferred_times,required_equipment,room_type_required,consecutive_hours,"+
			"faculty_preference_score,room_preference_score,time_preference_score\n"+
			"C1,Intro,CS101,1,lecture,30,F999,CS,1,3,,,,classroom,false,0.5,0.5,0.5\n")

	courses, err := LoadCourses(path, ',')
	require.NoError(t, err, "loading succeeds, binding fails later")

	_, rooms, faculty := SampleData()
	_, err = model.NewResourcePool(courses, rooms, faculty)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownFaculty)
	assert.Contains(t, err.Error(), "F999")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("   "))
	assert.Equal(t, []string{"a", "b"}, splitList("a| b "))
	assert.Equal(t, []string{"a"}, splitList("a||"))
}
