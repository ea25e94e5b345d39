// Package wire provides dependency injection for the kambari application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"

	cliadapter "github.com/Elsie-Muhumuza/kambari/internal/adapters/cli"
	"github.com/Elsie-Muhumuza/kambari/internal/adapters/gemini"
	"github.com/Elsie-Muhumuza/kambari/internal/adapters/guides"
	"github.com/Elsie-Muhumuza/kambari/internal/adapters/sqlite"
	"github.com/Elsie-Muhumuza/kambari/internal/adapters/whatsapp"
	"github.com/Elsie-Muhumuza/kambari/internal/app"
	"github.com/Elsie-Muhumuza/kambari/internal/config"
	"github.com/Elsie-Muhumuza/kambari/internal/db"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

var (
	cfg               *config.Config
	memberService     primary.MemberService
	sessionService    primary.SessionService
	attendanceService primary.AttendanceService
	seriesService     primary.SeriesService
	materialService   primary.MaterialService
	reminderService   primary.ReminderService
	reportService     primary.ReportService
	once              sync.Once
)

// Config returns the loaded application configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// MemberService returns the singleton MemberService instance.
func MemberService() primary.MemberService {
	once.Do(initServices)
	return memberService
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	once.Do(initServices)
	return sessionService
}

// AttendanceService returns the singleton AttendanceService instance.
func AttendanceService() primary.AttendanceService {
	once.Do(initServices)
	return attendanceService
}

// SeriesService returns the singleton SeriesService instance.
func SeriesService() primary.SeriesService {
	once.Do(initServices)
	return seriesService
}

// MaterialService returns the singleton MaterialService instance.
func MaterialService() primary.MaterialService {
	once.Do(initServices)
	return materialService
}

// ReminderService returns the singleton ReminderService instance.
func ReminderService() primary.ReminderService {
	once.Do(initServices)
	return reminderService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Load configuration (created with defaults on first run)
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogging(cfg.LogLevel)

	// Get database connection at the configured path
	db.SetPath(cfg.Paths.Database)
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	memberRepo := sqlite.NewMemberRepository(database)
	availabilityRepo := sqlite.NewAvailabilityRepository(database)
	sessionRepo := sqlite.NewSessionRepository(database)
	assignmentRepo := sqlite.NewAssignmentRepository(database)
	attendanceRepo := sqlite.NewAttendanceRepository(database)
	seriesRepo := sqlite.NewSeriesRepository(database)
	passageRepo := sqlite.NewPassageRepository(database)
	materialRepo := sqlite.NewMaterialRepository(database)

	// Collaborator adapters
	generator := gemini.NewClient(gemini.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.GeminiTimeout(),
	})
	sender := whatsapp.NewLinkWriter(os.Stdout)
	store := guides.NewFileStore(cfg.Paths.Guides)
	packs := guides.NewThemePacks(cfg.Paths.Themes)

	// MeetingDay was validated at config load
	meetingDay, err := cfg.MeetingDay()
	if err != nil {
		log.Fatalf("invalid meeting weekday: %v", err)
	}

	rosterCfg := app.RosterConfig{
		Roles:          cfg.Roles,
		Lookback:       cfg.LookbackWindow,
		MinGap:         cfg.MinGap,
		TieBreak:       cfg.TieBreak,
		MeetingWeekday: meetingDay,
	}

	// Create services (primary ports implementation)
	memberService = app.NewMemberService(memberRepo, availabilityRepo, cfg.Roles)
	sessionService = app.NewSessionService(sessionRepo, assignmentRepo, memberRepo, passageRepo, rosterCfg)
	attendanceService = app.NewAttendanceService(attendanceRepo, sessionRepo, assignmentRepo, memberRepo)
	seriesService = app.NewSeriesService(seriesRepo, passageRepo, packs, meetingDay)
	materialService = app.NewMaterialService(materialRepo, passageRepo, seriesRepo, generator, store)
	reminderService = app.NewReminderService(sessionRepo, assignmentRepo, memberRepo, passageRepo, sender, cfg.CountryPrefix, meetingDay)
	reportService = app.NewReportService(sessionRepo, assignmentRepo, attendanceRepo, memberRepo, passageRepo, seriesRepo, materialRepo, store)
}

// setupLogging installs the default slog handler: text to stderr at the
// configured level. CLI output itself goes through adapter writers, not
// the logger.
func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// MemberAdapter returns a new MemberAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func MemberAdapter() *cliadapter.MemberAdapter {
	return MemberAdapterWithOutput(os.Stdout)
}

// MemberAdapterWithOutput returns a new MemberAdapter writing to the given output.
func MemberAdapterWithOutput(out io.Writer) *cliadapter.MemberAdapter {
	once.Do(initServices)
	return cliadapter.NewMemberAdapter(memberService, out)
}

// SessionAdapter returns a new SessionAdapter writing to stdout.
func SessionAdapter() *cliadapter.SessionAdapter {
	return SessionAdapterWithOutput(os.Stdout)
}

// SessionAdapterWithOutput returns a new SessionAdapter writing to the given output.
func SessionAdapterWithOutput(out io.Writer) *cliadapter.SessionAdapter {
	once.Do(initServices)
	return cliadapter.NewSessionAdapter(sessionService, out)
}

// AttendanceAdapter returns a new AttendanceAdapter writing to stdout.
func AttendanceAdapter() *cliadapter.AttendanceAdapter {
	once.Do(initServices)
	return cliadapter.NewAttendanceAdapter(attendanceService, os.Stdout)
}

// SeriesAdapter returns a new SeriesAdapter writing to stdout.
func SeriesAdapter() *cliadapter.SeriesAdapter {
	once.Do(initServices)
	return cliadapter.NewSeriesAdapter(seriesService, os.Stdout)
}

// MaterialAdapter returns a new MaterialAdapter writing to stdout.
func MaterialAdapter() *cliadapter.MaterialAdapter {
	once.Do(initServices)
	return cliadapter.NewMaterialAdapter(materialService, os.Stdout)
}

// ReminderAdapter returns a new ReminderAdapter writing to stdout.
func ReminderAdapter() *cliadapter.ReminderAdapter {
	once.Do(initServices)
	return cliadapter.NewReminderAdapter(reminderService, os.Stdout)
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
func ReportAdapter() *cliadapter.ReportAdapter {
	once.Do(initServices)
	return cliadapter.NewReportAdapter(reportService, os.Stdout)
}
