package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/classmesh/timetabler/config"
	"github.com/classmesh/timetabler/internal/catalog"
	"github.com/classmesh/timetabler/internal/engine"
	"github.com/classmesh/timetabler/internal/model"
	"github.com/classmesh/timetabler/internal/sat"
	"github.com/classmesh/timetabler/internal/schedule"
	"github.com/classmesh/timetabler/internal/service"
	"github.com/classmesh/timetabler/pkg/logger"
)

func main() {
	// Define arguments
	configPtr := flag.String("config", "", "Path to the YAML configuration file; defaults apply when empty")
	catalogPtr := flag.String("catalog", "", "Path to the JSON catalog snapshot (courses, rooms, time slots, teachers)")
	yearPtr := flag.String("year", "", "Academic year to generate for, e.g. 2025-2026; defaults to the configured year")
	semesterPtr := flag.Int("semester", 0, "Semester to generate for; defaults to the configured semester")
	budgetPtr := flag.Int("budget", 0, "Solver time budget in seconds; defaults to the configured budget")
	solverPtr := flag.String("solver", "", "SAT backend to use; defaults to the configured backend")
	outPtr := flag.String("out", "", "Path to write the generated timetable as an Excel workbook")
	dimacsPtr := flag.String("dimacs", "", "Path to dump the constraint model in DIMACS-CNF format")
	flag.Parse()

	// Validate arguments
	if *catalogPtr == "" {
		log.Fatal("a catalog file must be specified")
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	if *yearPtr != "" {
		cfg.Scheduler.AcademicYear = *yearPtr
	}
	if *semesterPtr != 0 {
		cfg.Scheduler.Semester = *semesterPtr
	}
	if *budgetPtr != 0 {
		cfg.Scheduler.TimeBudgetSeconds = *budgetPtr
	}
	if *solverPtr != "" {
		cfg.Scheduler.Solver = *solverPtr
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Extract catalog snapshot
	snapshot, err := catalog.SnapshotFromJSON(*catalogPtr)
	if err != nil {
		log.Fatalf("cannot parse catalog file: %v", err)
	}

	options := model.Options{EnforceSubjectMatch: cfg.Scheduler.EnforceSubjectMatch}
	if *dimacsPtr != "" {
		instance := model.Build(snapshot, options).Instance
		if err := os.WriteFile(*dimacsPtr, []byte(instance.ToDIMACS()), 0666); err != nil {
			log.Fatalf("cannot write DIMACS file: %v", err)
		}
	}

	// Initialize engines
	solver, err := sat.SolverByName(cfg.Scheduler.Solver)
	if err != nil {
		names := sat.SolverNames()
		slices.Sort(names)
		log.Fatalf("%v (available: %v)", err, names)
	}

	store, err := newStore(cfg.Store)
	if err != nil {
		log.Fatalf("cannot initialize schedule store: %v", err)
	}

	eng := engine.New(solver, cfg.Scheduler.TimeBudget(), zapLogger)
	schedules := service.NewScheduleService(catalog.NewStaticSource(snapshot), store, eng, options, zapLogger)

	// Generate and publish
	term := schedule.Term{AcademicYear: cfg.Scheduler.AcademicYear, Semester: cfg.Scheduler.Semester}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Scheduler.TimeBudget()+10*time.Second)
	defer cancel()

	report, err := schedules.Generate(ctx, term)
	switch {
	case errors.Is(err, service.ErrEmptyCatalog),
		errors.Is(err, service.ErrInfeasible),
		errors.Is(err, service.ErrTimedOut):
		fmt.Printf("Published: false\nReason: %v\n", report.Reason)
		os.Exit(1)
	case errors.Is(err, schedule.ErrPublishConflict):
		fmt.Println("Published: false\nReason: concurrent publish won the race; re-run to retry")
		os.Exit(1)
	case err != nil:
		log.Fatalf("an error occurred during schedule generation: %v", err)
	}

	fmt.Printf("Published: true\nEntries: %v\nGeneration: %v\n", report.EntryCount, report.GenerationID)

	if *outPtr != "" {
		exports := service.NewExportService(schedules, zapLogger)
		buf, _, err := exports.ExportTimetable(ctx, term)
		if err != nil {
			log.Fatalf("an error occurred while exporting the timetable: %v", err)
		}
		if err := os.WriteFile(*outPtr, buf.Bytes(), 0666); err != nil {
			log.Fatalf("an error occurred while writing the output file: %v", err)
		}
	}
}

func newStore(cfg config.StoreConfig) (schedule.Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return schedule.NewMemoryStore(), nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		store := schedule.NewGormStore(db)
		if err := store.AutoMigrate(); err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("%v is not a known store driver", cfg.Driver)
}
