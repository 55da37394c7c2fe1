package csvio

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/classgrid/SmartClassGrid/internal/scheduler"
	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// scheduleCSVRow is the flat export shape for one scheduled entry.
type scheduleCSVRow struct {
	CourseCode string  `csv:"course_code"`
	CourseName string  `csv:"course_name"`
	Day        string  `csv:"day"`
	Time       string  `csv:"time"`
	Duration   int     `csv:"duration"`
	Room       string  `csv:"room"`
	Faculty    string  `csv:"faculty"`
	Department string  `csv:"department"`
	Efficiency float64 `csv:"resource_efficiency"`
}

// ExportSchedule writes the schedule to the CSV file at path, ordered by
// day then time then course code.
func ExportSchedule(schedule *model.Schedule, path string) error {
	rows := formatSchedule(schedule)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ExportScheduleString renders the schedule as a CSV document in memory.
func ExportScheduleString(schedule *model.Schedule) (string, error) {
	rows := formatSchedule(schedule)
	str, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("marshal schedule: %w", err)
	}
	return str, nil
}

// ExportConflicts writes the conflict report as indented JSON.
func ExportConflicts(report scheduler.ConflictReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal conflicts: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// PrintSchedule prints the weekly timetable grouped by day.
func PrintSchedule(schedule *model.Schedule) {
	rows := formatSchedule(schedule)
	lastDay := ""
	for _, row := range rows {
		if row.Day != lastDay {
			lastDay = row.Day
			fmt.Printf("\n%s %s %s\n", strings.Repeat("-", 12), row.Day, strings.Repeat("-", 12))
		}
		fmt.Printf("%-7s %-10s %-30s %-10s %s\n", row.Time, row.CourseCode, row.CourseName, row.Room, row.Faculty)
	}
	fmt.Printf("\nScheduled entries: %d, conflicts: %d, accuracy: %.1f\n",
		len(schedule.Entries), schedule.TotalConflicts, schedule.AccuracyScore)
}

func formatSchedule(schedule *model.Schedule) []*scheduleCSVRow {
	rows := make([]*scheduleCSVRow, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		rows = append(rows, &scheduleCSVRow{
			CourseCode: entry.Course.Code,
			CourseName: entry.Course.Name,
			Day:        entry.Day,
			Time:       entry.Time,
			Duration:   entry.Duration,
			Room:       entry.Room.ID,
			Faculty:    entry.Faculty.Name,
			Department: entry.Course.Department,
			Efficiency: entry.ResourceEfficiency,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if di, dj := model.DayIndex(rows[i].Day), model.DayIndex(rows[j].Day); di != dj {
			return di < dj
		}
		if ti, tj := model.TimeIndex(rows[i].Time), model.TimeIndex(rows[j].Time); ti != tj {
			return ti < tj
		}
		return rows[i].CourseCode < rows[j].CourseCode
	})
	return rows
}
