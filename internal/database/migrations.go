package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Assignment lookups are always (worker, date) or (task, date)
		{"assignments", "idx_assignments_worker_date", "worker_id, assigned_date"},
		{"assignments", "idx_assignments_task_date", "task_id, assigned_date"},
		{"assignments", "idx_assignments_organization_id", "organization_id"},

		// Site role resolution per request
		{"job_site_assignments", "idx_site_assignments_user_active", "user_id, is_active"},
		{"job_site_assignments", "idx_site_assignments_site_id", "job_site_id"},

		// Fuzzy name resolution scans within one organization
		{"workers", "idx_workers_org_name", "organization_id, name"},
		{"tasks", "idx_tasks_org_name", "organization_id, name"},
		{"tasks", "idx_tasks_job_site_id", "job_site_id"},

		// Pending request review, newest first
		{"assignment_requests", "idx_requests_worker_status", "worker_id, status, created_at"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
