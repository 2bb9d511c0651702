// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"strings"
	"time"

	"github.com/99yash/eptesicus/internal/models"
)

// CreateIssue inserts an issue row.
func (r *Repository) CreateIssue(ctx context.Context, issue *models.Issue) (*models.Issue, error) {
	issue.ID = newID()
	now := time.Now().UTC()
	issue.CreatedAt = now
	issue.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO issues
		     (id, title, description, user_id, organization_id, assignee_id, status, priority, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		issue.ID, issue.Title, issue.Description, issue.UserID, issue.OrganizationID,
		issue.AssigneeID, issue.Status, issue.Priority, issue.CreatedAt, issue.UpdatedAt)
	if err != nil {
		return nil, wrapError(err)
	}
	return issue, nil
}

// GetIssueByID retrieves an issue by id.
func (r *Repository) GetIssueByID(ctx context.Context, id string) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.GetContext(ctx, &issue, `SELECT * FROM issues WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &issue, nil
}

// IssueFilter narrows ListIssues. Zero values mean "no filter".
type IssueFilter struct {
	OrganizationID string
	UserID         string
}

// ListIssues returns issues matching the filter, newest first.
func (r *Repository) ListIssues(ctx context.Context, filter IssueFilter) ([]models.Issue, error) {
	query := `SELECT * FROM issues`
	var conds []string
	var args []any

	if filter.OrganizationID != "" {
		conds = append(conds, "organization_id = ?")
		args = append(args, filter.OrganizationID)
	}
	if filter.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var issues []models.Issue
	if err := r.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, wrapError(err)
	}
	return issues, nil
}

// IssuePatch holds the updatable issue fields. Nil pointers are left
// unchanged.
type IssuePatch struct {
	Title       *string
	Description *string
	AssigneeID  *string
	Status      *models.IssueStatus
	Priority    *models.IssuePriority
}

// Empty reports whether the patch changes nothing.
func (p IssuePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.AssigneeID == nil &&
		p.Status == nil && p.Priority == nil
}

// UpdateIssue applies a partial update and returns the fresh row.
func (r *Repository) UpdateIssue(ctx context.Context, id string, patch IssuePatch) (*models.Issue, error) {
	var sets []string
	var args []any

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.AssigneeID != nil {
		sets = append(sets, "assignee_id = ?")
		args = append(args, *patch.AssigneeID)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE issues SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetIssueByID(ctx, id)
}

// DeleteIssue removes an issue row.
func (r *Repository) DeleteIssue(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE id = ?`, id)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
