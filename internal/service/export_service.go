package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/classmesh/timetabler/internal/catalog"
	"github.com/classmesh/timetabler/internal/schedule"
)

// ErrExportNoSchedule: the term has no active schedule to export.
var ErrExportNoSchedule = errors.New("no active schedule for the term")

// ExportService renders a term's active schedule as an Excel workbook: one
// sheet, days as columns, slot times as rows.
type ExportService interface {
	// ExportTimetable returns the workbook bytes and a suggested filename.
	ExportTimetable(ctx context.Context, term schedule.Term) (*bytes.Buffer, string, error)
}

type exportService struct {
	schedules ScheduleService
	logger    *zap.Logger
}

func NewExportService(schedules ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{schedules: schedules, logger: logger}
}

var exportDays = []catalog.DayOfWeek{
	catalog.Monday,
	catalog.Tuesday,
	catalog.Wednesday,
	catalog.Thursday,
	catalog.Friday,
	catalog.Saturday,
}

func (s *exportService) ExportTimetable(ctx context.Context, term schedule.Term) (*bytes.Buffer, string, error) {
	grid, err := s.schedules.WeeklyGrid(ctx, term)
	if err != nil {
		s.logger.Error("loading weekly grid failed", zap.Error(err))
		return nil, "", err
	}
	if lo.EveryBy(exportDays, func(day catalog.DayOfWeek) bool { return len(grid[day]) == 0 }) {
		return nil, "", ErrExportNoSchedule
	}

	// Row labels: distinct slot windows across all days, earliest first.
	type window struct{ start, end string }
	windows := make(map[window]bool)
	for _, items := range grid {
		for _, item := range items {
			windows[window{start: item.Slot.StartTime, end: item.Slot.EndTime}] = true
		}
	}
	rows := lo.Keys(windows)
	sort.Slice(rows, func(i, j int) bool { return rows[i].start < rows[j].start })

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", err
	}

	f.SetCellValue(sheet, "A1", "Time")
	for i, day := range exportDays {
		cell, _ := excelize.CoordinatesToCellName(2+i, 1)
		f.SetCellValue(sheet, cell, string(day))
	}
	lastHeader, _ := excelize.CoordinatesToCellName(1+len(exportDays), 1)
	f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)
	f.SetColWidth(sheet, "A", "G", 24)

	for r, row := range rows {
		label := fmt.Sprintf("%v-%v", row.start, row.end)
		cell, _ := excelize.CoordinatesToCellName(1, 2+r)
		f.SetCellValue(sheet, cell, label)

		for c, day := range exportDays {
			sessions := lo.Filter(grid[day], func(item GridItem, _ int) bool {
				return item.Slot.StartTime == row.start && item.Slot.EndTime == row.end
			})
			if len(sessions) == 0 {
				continue
			}

			lines := lo.Map(sessions, func(item GridItem, _ int) string {
				return fmt.Sprintf("%v · %v @ %v", item.Course.Code, item.Teacher.Name, item.Room.Number)
			})
			cell, _ := excelize.CoordinatesToCellName(2+c, 2+r)
			f.SetCellValue(sheet, cell, strings.Join(lines, "\n"))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("writing workbook failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("timetable_%v_sem%v.xlsx", term.AcademicYear, term.Semester)
	return buf, filename, nil
}
