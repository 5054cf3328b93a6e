package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/auth"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/forms"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/gateway"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/repository"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/service"
	"github.com/SawaDev/remix-of-eduadmin-pro/pkg/config"
	"github.com/SawaDev/remix-of-eduadmin-pro/pkg/logger"
)

const usage = `eduadmin <command> [flags]

Commands:
  stats                        dashboard overview
  students   list|new-pool|create|update
  teachers   list|create
  groups     list|detail|create|add
  activate   -student -group   activate a new-pool student into a group
  remove     -group -student -yes
  payments   list|stats|set-period
  attendance -group -date -present -absent
  assignments list|create|grade
  export     roster|payments   -format csv|pdf
`

// app bundles the wired services behind the subcommands.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	students  *service.StudentService
	teachers  *service.TeacherService
	groups    *service.GroupService
	lifecycle *service.LifecycleService
	payments  *service.PaymentService
	sheets    *service.AttendanceService
	tasks     *service.AssignmentService
	dashboard *service.DashboardService
	exports   *service.ExportService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	a := wire(cfg, logr)
	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func wire(cfg *config.Config, logr *zap.Logger) *app {
	metrics := gateway.NewMetrics()

	var tokens gateway.TokenSource
	if cfg.Auth.Token != "" {
		tokens = auth.StaticToken(cfg.Auth.Token)
	} else {
		// Logins go through a bare client so the source never recurses.
		bare := gateway.NewClient(cfg.API, nil, logr, metrics)
		tokens = auth.NewLoginSource(bare, cfg.Auth.Email, cfg.Auth.Password)
	}

	client := gateway.NewClient(cfg.API, tokens, logr, metrics)
	store := cache.NewStore(logr)
	coordinator := cache.NewCoordinator(store, logr)
	validate := forms.New()

	studentRepo := repository.NewStudentRepository(client, store)
	teacherRepo := repository.NewTeacherRepository(client, store)
	groupRepo := repository.NewGroupRepository(client, store)
	paymentRepo := repository.NewPaymentRepository(client, store)
	assignmentRepo := repository.NewAssignmentRepository(client, store)
	attendanceRepo := repository.NewAttendanceRepository(client)
	statsRepo := repository.NewStatsRepository(client, store)

	return &app{
		cfg:       cfg,
		logger:    logr,
		students:  service.NewStudentService(studentRepo, coordinator, validate, logr),
		teachers:  service.NewTeacherService(teacherRepo, coordinator, validate, logr),
		groups:    service.NewGroupService(groupRepo, coordinator, validate, logr),
		lifecycle: service.NewLifecycleService(groupRepo, studentRepo, coordinator, validate, logr),
		payments:  service.NewPaymentService(paymentRepo, coordinator, validate, logr),
		sheets:    service.NewAttendanceService(attendanceRepo, coordinator, validate, logr),
		tasks:     service.NewAssignmentService(assignmentRepo, coordinator, validate, logr),
		dashboard: service.NewDashboardService(statsRepo, paymentRepo, logr),
		exports:   service.NewExportService(groupRepo, paymentRepo, logr),
	}
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("command required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*a.cfg.API.Timeout+30*time.Second)
	defer cancel()

	switch args[0] {
	case "stats":
		overview, err := a.dashboard.Overview(ctx)
		if err != nil {
			return err
		}
		return print(overview)
	case "students":
		return a.runStudents(ctx, args[1:])
	case "teachers":
		return a.runTeachers(ctx, args[1:])
	case "groups":
		return a.runGroups(ctx, args[1:])
	case "activate":
		return a.runActivate(ctx, args[1:])
	case "remove":
		return a.runRemove(ctx, args[1:])
	case "payments":
		return a.runPayments(ctx, args[1:])
	case "attendance":
		return a.runAttendance(ctx, args[1:])
	case "assignments":
		return a.runAssignments(ctx, args[1:])
	case "export":
		return a.runExport(ctx, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) runStudents(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("students requires a subcommand: list, new-pool, create, update")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("students list", flag.ContinueOnError)
		search := fs.String("search", "", "name or phone filter")
		status := fs.String("status", "", "status filter")
		page := fs.Int("page", 1, "page")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		students, err := a.students.List(ctx, models.StudentFilter{
			Search: *search,
			Status: models.StudentStatus(*status),
			Page:   *page,
		})
		if err != nil {
			return err
		}
		return print(students)
	case "new-pool":
		pool, err := a.lifecycle.NewPool(ctx)
		if err != nil {
			return err
		}
		return print(pool)
	case "create", "update":
		fs := flag.NewFlagSet("students "+args[0], flag.ContinueOnError)
		id := fs.Int64("id", 0, "student id (update only)")
		name := fs.String("name", "", "full name")
		phone := fs.String("phone", "", "phone, 12 digits")
		email := fs.String("email", "", "email")
		expiry := fs.String("expiry", "", "payment expiry YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		form := forms.StudentForm{FullName: *name, Phone: *phone, Email: *email, PaymentExpiry: *expiry}

		var (
			student *models.Student
			errs    forms.Errors
			err     error
		)
		if args[0] == "create" {
			student, errs, err = a.students.Create(ctx, form)
		} else {
			if *id == 0 {
				return fmt.Errorf("-id is required for update")
			}
			student, errs, err = a.students.Update(ctx, *id, form)
		}
		if !errs.Valid() {
			return fieldErrors(errs)
		}
		if err != nil {
			return err
		}
		return print(student)
	default:
		return fmt.Errorf("unknown students subcommand %q", args[0])
	}
}

func (a *app) runTeachers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("teachers requires a subcommand: list, create")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("teachers list", flag.ContinueOnError)
		search := fs.String("search", "", "name filter")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		teachers, err := a.teachers.List(ctx, models.TeacherFilter{Search: *search})
		if err != nil {
			return err
		}
		return print(teachers)
	case "create":
		fs := flag.NewFlagSet("teachers create", flag.ContinueOnError)
		name := fs.String("name", "", "full name")
		phone := fs.String("phone", "", "phone, 12 digits")
		email := fs.String("email", "", "email")
		position := fs.String("position", "main", "main or assistant")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		teacher, errs, err := a.teachers.Create(ctx, forms.TeacherForm{
			FullName: *name, Phone: *phone, Email: *email, Position: *position,
		})
		if !errs.Valid() {
			return fieldErrors(errs)
		}
		if err != nil {
			return err
		}
		return print(teacher)
	default:
		return fmt.Errorf("unknown teachers subcommand %q", args[0])
	}
}

func (a *app) runGroups(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("groups requires a subcommand: list, detail, create, add")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("groups list", flag.ContinueOnError)
		search := fs.String("search", "", "name filter")
		level := fs.String("level", "", "level filter")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		groups, err := a.groups.List(ctx, models.GroupFilter{Search: *search, Level: *level})
		if err != nil {
			return err
		}
		return print(groups)
	case "detail":
		fs := flag.NewFlagSet("groups detail", flag.ContinueOnError)
		id := fs.Int64("id", 0, "group id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		detail, err := a.groups.Detail(ctx, *id)
		if err != nil {
			return err
		}
		return print(detail)
	case "create":
		fs := flag.NewFlagSet("groups create", flag.ContinueOnError)
		name := fs.String("name", "", "group name")
		level := fs.String("level", "", "level, e.g. B1")
		teacher := fs.String("teacher", "", "main teacher id")
		assistant := fs.String("assistant", "", "assistant teacher id, or 'none'")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		errs, group, err := a.groups.Create(ctx, forms.GroupForm{
			Name: *name, Level: *level, MainTeacherID: *teacher, AssistantTeacherID: *assistant,
		})
		if !errs.Valid() {
			return fieldErrors(errs)
		}
		if err != nil {
			return err
		}
		return print(group)
	case "add":
		fs := flag.NewFlagSet("groups add", flag.ContinueOnError)
		id := fs.Int64("id", 0, "group id")
		ids := fs.String("students", "", "comma-separated student ids")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		selection := service.NewBatchSelection()
		studentIDs, err := parseIDs(*ids)
		if err != nil {
			return err
		}
		if err := selection.AddAll(studentIDs); err != nil {
			return err
		}
		if err := a.lifecycle.AddToGroup(ctx, *id, selection); err != nil {
			return err
		}
		fmt.Printf("added %d students to group %d\n", len(selection.IDs()), *id)
		return nil
	default:
		return fmt.Errorf("unknown groups subcommand %q", args[0])
	}
}

func (a *app) runActivate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("activate", flag.ContinueOnError)
	studentID := fs.Int64("student", 0, "student id from the new pool")
	groupID := fs.String("group", "", "target group id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	student, err := a.students.Find(ctx, *studentID)
	if err != nil {
		return err
	}

	workflow, err := a.lifecycle.OpenActivation(*student)
	if err != nil {
		return err
	}
	defer workflow.Close()

	if err := workflow.SelectGroup(ctx, *groupID); err != nil {
		return err
	}
	errs, err := workflow.Submit(ctx)
	if !errs.Valid() {
		return fieldErrors(errs)
	}
	if err != nil {
		return err
	}
	fmt.Printf("student %d activated into %s\n", *studentID, workflow.GroupName())
	return nil
}

func (a *app) runRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	groupID := fs.Int64("group", 0, "group id")
	studentID := fs.Int64("student", 0, "student id")
	yes := fs.Bool("yes", false, "confirm the removal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ticket := a.lifecycle.BeginRemoval(*studentID, *groupID)
	if *yes {
		ticket.Confirm()
	}
	if err := a.lifecycle.Remove(ctx, ticket); err != nil {
		return err
	}
	fmt.Printf("student %d removed from group %d\n", *studentID, *groupID)
	return nil
}

func (a *app) runPayments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("payments requires a subcommand: list, stats, set-period")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("payments list", flag.ContinueOnError)
		search := fs.String("search", "", "student filter")
		status := fs.String("status", "", "Active or Expired")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		payments, err := a.payments.List(ctx, models.PaymentFilter{
			Search: *search,
			Status: models.PaymentStatus(*status),
		})
		if err != nil {
			return err
		}
		return print(payments)
	case "stats":
		stats, err := a.payments.Stats(ctx)
		if err != nil {
			return err
		}
		return print(stats)
	case "set-period":
		fs := flag.NewFlagSet("payments set-period", flag.ContinueOnError)
		id := fs.Int64("id", 0, "payment id")
		start := fs.String("start", "", "start date YYYY-MM-DD")
		end := fs.String("end", "", "end date YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		payment, errs, err := a.payments.UpdatePeriod(ctx, *id, *start, *end)
		if !errs.Valid() {
			return fieldErrors(errs)
		}
		if err != nil {
			return err
		}
		return print(payment)
	default:
		return fmt.Errorf("unknown payments subcommand %q", args[0])
	}
}

func (a *app) runAttendance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attendance", flag.ContinueOnError)
	groupID := fs.Int64("group", 0, "group id")
	date := fs.String("date", "", "date YYYY-MM-DD")
	present := fs.String("present", "", "comma-separated student ids marked present")
	absent := fs.String("absent", "", "comma-separated student ids marked absent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sheet, err := a.sheets.OpenSheet(*groupID, *date)
	if err != nil {
		return err
	}
	presentIDs, err := parseIDs(*present)
	if err != nil {
		return err
	}
	absentIDs, err := parseIDs(*absent)
	if err != nil {
		return err
	}
	for _, id := range presentIDs {
		sheet.Mark(id, true)
	}
	for _, id := range absentIDs {
		sheet.Mark(id, false)
	}

	if err := a.sheets.Save(ctx, sheet); err != nil {
		return err
	}
	fmt.Printf("attendance saved for group %d on %s (%d marks)\n", *groupID, *date, sheet.Len())
	return nil
}

func (a *app) runAssignments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("assignments requires a subcommand: list, create, grade")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("assignments list", flag.ContinueOnError)
		groupID := fs.Int64("group", 0, "limit to one group")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		var (
			assignments []models.Assignment
			err         error
		)
		if *groupID > 0 {
			assignments, err = a.tasks.ListByGroup(ctx, *groupID)
		} else {
			assignments, err = a.tasks.List(ctx)
		}
		if err != nil {
			return err
		}
		return print(assignments)
	case "create":
		fs := flag.NewFlagSet("assignments create", flag.ContinueOnError)
		groupID := fs.Int64("group", 0, "group id")
		title := fs.String("title", "", "assignment title")
		description := fs.String("description", "", "assignment text")
		due := fs.String("due", "", "due date YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		assignment, err := a.tasks.Create(ctx, service.CreateAssignmentInput{
			GroupID: *groupID, Title: *title, Description: *description, DueDate: *due,
		})
		if err != nil {
			return err
		}
		return print(assignment)
	case "grade":
		fs := flag.NewFlagSet("assignments grade", flag.ContinueOnError)
		submission := fs.Int64("submission", 0, "submission id")
		assignment := fs.Int64("assignment", 0, "assignment id")
		groupID := fs.Int64("group", 0, "group id")
		grade := fs.Int("grade", -1, "grade 0-100")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		draft := service.NewGradeDraft(*submission, *assignment, *groupID)
		if err := draft.Set(*grade); err != nil {
			return err
		}
		if err := a.tasks.CommitGrade(ctx, draft); err != nil {
			return err
		}
		fmt.Printf("submission %d graded %d\n", *submission, *grade)
		return nil
	default:
		return fmt.Errorf("unknown assignments subcommand %q", args[0])
	}
}

func (a *app) runExport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("export requires a subcommand: roster, payments")
	}
	fs := flag.NewFlagSet("export "+args[0], flag.ContinueOnError)
	groupID := fs.Int64("group", 0, "group id (roster only)")
	format := fs.String("format", "csv", "csv or pdf")
	out := fs.String("out", "", "output path, defaults under the export dir")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var (
		data []byte
		name string
		err  error
	)
	switch args[0] {
	case "roster":
		data, err = a.exports.Roster(ctx, *groupID, service.ExportFormat(*format))
		name = fmt.Sprintf("roster-%d.%s", *groupID, *format)
	case "payments":
		data, err = a.exports.PaymentReport(ctx, models.PaymentFilter{}, service.ExportFormat(*format))
		name = fmt.Sprintf("payments-%s.%s", time.Now().Format("2006-01-02"), *format)
	default:
		return fmt.Errorf("unknown export subcommand %q", args[0])
	}
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		if err := os.MkdirAll(a.cfg.Export.Dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
		path = filepath.Join(a.cfg.Export.Dir, name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Println("written", path)
	return nil
}

func print(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fieldErrors(errs forms.Errors) error {
	parts := make([]string, 0, len(errs))
	for field, msg := range errs {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Errorf("invalid input (%s)", strings.Join(parts, "; "))
}

func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
