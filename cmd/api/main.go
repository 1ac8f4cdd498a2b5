package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/config"
	appHTTP "github.com/clinichr/clinic-hr-backend/internal/handler/http"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/cron"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/face"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/jwt"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/push"
	"github.com/clinichr/clinic-hr-backend/internal/repository/postgresql"
	attendanceService "github.com/clinichr/clinic-hr-backend/internal/service/attendance"
	employeeService "github.com/clinichr/clinic-hr-backend/internal/service/employee"
	leaveService "github.com/clinichr/clinic-hr-backend/internal/service/leave"
	payrollService "github.com/clinichr/clinic-hr-backend/internal/service/payroll"
	reminderService "github.com/clinichr/clinic-hr-backend/internal/service/reminder"
	taskService "github.com/clinichr/clinic-hr-backend/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	rules, err := cfg.PayrollRules()
	if err != nil {
		fmt.Println("Error loading payroll rules:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leavePolicyRepo := postgresql.NewLeavePolicyRepository(db)
	payrollStatusRepo := postgresql.NewPayrollStatusRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	faceVerifier := face.NewHTTPVerifier(cfg.Face.BaseURL, cfg.Face.Timeout)
	notifier := push.NewExpoNotifier(10 * time.Second)

	engine := payrollService.NewEngine(
		employeeRepo,
		attendanceRepo,
		leaveRequestRepo,
		leavePolicyRepo,
		payrollStatusRepo,
		rules,
	)

	employeeSvc := employeeService.NewService(employeeRepo, jwtService, cfg.App.DefaultTimezone)
	attendanceSvc := attendanceService.NewService(attendanceRepo, employeeRepo, faceVerifier, attendanceService.Geofence{
		Latitude:     cfg.Office.Latitude,
		Longitude:    cfg.Office.Longitude,
		RadiusMeters: cfg.Office.RadiusMeters,
	})
	leaveSvc := leaveService.NewService(leaveRequestRepo, leavePolicyRepo, employeeRepo, rules)
	taskSvc := taskService.NewService(db, taskRepo, notificationRepo, employeeRepo, notifier)
	reminderSvc := reminderService.NewService(employeeRepo, attendanceRepo, notificationRepo, notifier)

	scheduler := cron.NewScheduler()
	reminderSvc.Register(scheduler, 5*time.Minute)
	scheduler.Start()
	defer scheduler.Stop()

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(engine)
	taskHandler := appHTTP.NewTaskHandler(taskSvc, notificationRepo)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		jwtService,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
		taskHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
