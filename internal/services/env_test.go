package services

import (
	"testing"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db        *gorm.DB
	schedules *ScheduleService
	tasks     *TaskService
	workers   *WorkerService
	sites     *JobSiteService
	requests  *RequestService
	voice     *VoiceService

	workerRepo  repository.WorkerRepository
	taskRepo    repository.TaskRepository
	siteRepo    repository.JobSiteRepository
	assignRepo  repository.AssignmentRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.UserProfile{},
		&models.JobSite{},
		&models.JobSiteAssignment{},
		&models.Worker{},
		&models.Task{},
		&models.Assignment{},
		&models.AssignmentRequest{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	siteRepo := repository.NewJobSiteRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	assignRepo := repository.NewAssignmentRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	schedules := NewScheduleService(assignRepo, taskRepo, workerRepo)
	tasks := NewTaskService(taskRepo, siteRepo)
	workers := NewWorkerService(workerRepo, siteRepo)
	sites := NewJobSiteService(siteRepo, userRepo)
	requests := NewRequestService(requestRepo, workerRepo, taskRepo)
	voice := NewVoiceService(workerRepo, taskRepo, siteRepo, schedules, tasks, requests)

	return serviceTestEnv{
		db:          db,
		schedules:   schedules,
		tasks:       tasks,
		workers:     workers,
		sites:       sites,
		requests:    requests,
		voice:       voice,
		workerRepo:  workerRepo,
		taskRepo:    taskRepo,
		siteRepo:    siteRepo,
		assignRepo:  assignRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// seedSite creates an organization-1 job site.
func (env serviceTestEnv) seedSite(t *testing.T, name string) *models.JobSite {
	t.Helper()
	site := &models.JobSite{
		OrganizationID: 1,
		Name:           name,
		Status:         models.JobSiteStatusActive,
		StartDate:      "2026-01-01",
	}
	require.NoError(t, env.db.Create(site).Error)
	return site
}

func (env serviceTestEnv) seedWorker(t *testing.T, name string, jobSiteID *uint64) *models.Worker {
	t.Helper()
	worker := &models.Worker{
		OrganizationID: 1,
		Name:           name,
		Role:           models.WorkerRoleLaborer,
		Status:         models.WorkerStatusActive,
		JobSiteID:      jobSiteID,
	}
	require.NoError(t, env.db.Create(worker).Error)
	return worker
}

func (env serviceTestEnv) seedTask(t *testing.T, name string, jobSiteID *uint64) *models.Task {
	t.Helper()
	task := &models.Task{
		OrganizationID: 1,
		Name:           name,
		JobSiteID:      jobSiteID,
		Location:       "north lot",
		StartDate:      "2026-01-10",
		EndDate:        "2026-01-30",
		Status:         models.TaskStatusActive,
		CreatedBy:      1,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

// superintendentOn builds a caller holding the superintendent role on
// the given sites.
func superintendentOn(siteIDs ...uint64) authz.Caller {
	roles := make(map[uint64]models.SiteRole, len(siteIDs))
	for _, id := range siteIDs {
		roles[id] = models.SiteRoleSuperintendent
	}
	return authz.Caller{
		UserID:         1,
		OrganizationID: 1,
		BaseRole:       models.BaseRoleSuperintendent,
		SiteRoles:      roles,
	}
}

func foremanOn(siteIDs ...uint64) authz.Caller {
	roles := make(map[uint64]models.SiteRole, len(siteIDs))
	for _, id := range siteIDs {
		roles[id] = models.SiteRoleForeman
	}
	return authz.Caller{
		UserID:         2,
		OrganizationID: 1,
		BaseRole:       models.BaseRoleForeman,
		SiteRoles:      roles,
	}
}

func orgAdmin() authz.Caller {
	return authz.Caller{
		UserID:         3,
		OrganizationID: 1,
		BaseRole:       models.BaseRoleAdmin,
		SiteRoles:      map[uint64]models.SiteRole{},
	}
}
