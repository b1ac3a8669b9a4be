// Command timetable is a thin demonstration binary over the scheduling
// library: it runs one parse-and-place pass over an in-memory fixture and
// prints the result. Loading real institutional data (workbook rows,
// room lists, instructor config) is an external collaborator's job
// (spec.md §1, §6); this binary only ever exercises the library end to
// end with values it builds itself.
//
// The command tree and flag-binding style are carried from
// russross/schedule's cli.go: a cobra.Command tree assembled in main,
// one Run function per subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wkatu/timetable/internal/config"
	"github.com/wkatu/timetable/internal/metrics"
	"github.com/wkatu/timetable/internal/model"
	"github.com/wkatu/timetable/internal/scheduler"
	"github.com/wkatu/timetable/internal/workload"
)

const version = "0.1.0"

var logLevel string

func main() {
	root := &cobra.Command{
		Use:   "timetable",
		Short: "Workload extraction and stage-1 scheduling demonstration",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "parse a demonstration workload and place it",
		RunE:  runDemo,
	}
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "logger level: debug, info, warn, error")
	_ = viper.BindPFlag("log-level", runCmd.Flags().Lookup("log-level"))
	viper.SetEnvPrefix("TIMETABLE")
	viper.AutomaticEnv()

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the binary version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	root.AddCommand(runCmd, versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(viper.GetString("log-level")); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	sheets := []workload.Sheet{fixtureSheet()}
	knownInstructorColumns := map[string]int{"demo": 8}
	streams, parseErrs := workload.ParseWorkload(sheets, workload.DefaultColumnLayout, knownInstructorColumns, nil, logger)
	for _, e := range parseErrs {
		logger.Warn("parse warning", zap.Error(e))
	}

	cfg := fixtureConfig()
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid demonstration config: %w", err)
	}

	flexibleSubjects := map[string]bool{"Physical Education": true}
	unavailable := scheduler.ResolveUnavailability(cfg.InstructorAvailability)
	nearby := model.NewNearbyGroups(cfg.NearbyBuildings)

	tracker := scheduler.NewConflictTracker(scheduler.DefaultPolicy, nearby, unavailable)
	rooms := scheduler.NewRoomManager(cfg.ModelRooms(), cfg.SubjectRoomRequirements, cfg.InstructorRoomPrefs, cfg.GroupBuildings)
	engine := scheduler.NewPlacementEngine(tracker, rooms, scheduler.DefaultPolicy, flexibleSubjects, cfg.ForcedSecondShiftSet(), cfg.DeadGroupSet(), logger)

	ordered := scheduler.SortStreams(streams, flexibleSubjects, scheduler.InstructorAvailableSlots(streams, unavailable))
	assignments, unscheduled := engine.Run(ordered)
	result := scheduler.Aggregate(assignments, unscheduled, rooms)

	collector := metrics.NewCollector()
	collector.Record(result)

	logger.Info("run complete",
		zap.Int("assigned", result.Statistics.TotalAssigned),
		zap.Int("unscheduled", result.Statistics.TotalUnscheduled),
	)

	for _, a := range result.Assignments {
		fmt.Printf("%-8s %-20s %-6s %s slot %2d -> %s (%s)\n", a.StreamID[:8], a.Subject, a.Instructor, a.Day, a.Slot, a.Room, a.RoomAddress)
	}
	for _, u := range result.Unscheduled {
		fmt.Printf("UNSCHEDULED %-20s %-6s reason=%s\n", u.Subject, u.Instructor, u.Reason)
	}

	return nil
}
