package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shiftguard/backend/internal/config"
	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/repository"
	"github.com/shiftguard/backend/internal/scheduling"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	engine        *scheduling.Engine
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	rules := scheduling.Rules{
		MinRestHours:       cfg.Scheduling.MinRestHours,
		MaxHoursPerDay:     cfg.Scheduling.MaxHoursPerDay,
		MaxHoursPerWeek:    cfg.Scheduling.MaxHoursPerWeek,
		DeclineWindowHours: cfg.Scheduling.DeclineWindowHours,
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		engine:        scheduling.NewEngine(rules, repo),
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a valid session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Route("/my-info", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Patch("/", h.UpdateEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateEmployeePassword)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.With(h.requireManage).Post("/", h.CreateShift)
			r.Get("/", h.GetShifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftInfo)
				r.Get("/", h.GetShift)
				r.With(h.requireManage).Patch("/", h.UpdateShift)
				r.With(h.requireManage).Delete("/", h.DeleteShift)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.With(h.requireManage).Post("/", h.CreateSchedule)
			r.Get("/", h.GetAllSchedules)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.scheduleInfo)
				r.Get("/", h.GetSchedule)
				r.With(h.requireManage).Patch("/", h.UpdateSchedule)
				r.With(h.requireManage).Delete("/", h.DeleteSchedule)
				r.Get("/assignments", h.GetScheduleAssignments)
				r.With(h.requireManage).Post("/assignments", h.CreateAssignment)
				r.With(h.requireManage).Post("/assignments/bulk", h.CreateAssignmentsBulk)
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.assignmentInfo)
				r.Get("/", h.GetAssignment)
				r.Patch("/", h.UpdateAssignmentDetails)
				r.Delete("/", h.CancelAssignment)
				r.Post("/confirm", h.ConfirmAssignment)
				r.Post("/decline", h.DeclineAssignment)
				r.Get("/conflicts", h.GetAssignmentConflicts)
			})
		})

		r.Route("/validate", func(r chi.Router) {
			r.Post("/assignment", h.ValidateAssignment)
			r.Post("/batch", h.ValidateBatch)
		})

		r.With(h.requireManage).Get("/departments/{id}/conflict-report", h.GetConflictReport)
	})
}
