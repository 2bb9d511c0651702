// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package models

import "time"

// IssueStatus is the workflow state of an issue.
type IssueStatus string

const (
	StatusBacklog    IssueStatus = "backlog"
	StatusTodo       IssueStatus = "todo"
	StatusInProgress IssueStatus = "in_progress"
	StatusInReview   IssueStatus = "in_review"
	StatusDone       IssueStatus = "done"
	StatusCancelled  IssueStatus = "cancelled"
	StatusDuplicate  IssueStatus = "duplicate"
)

// IssuePriority orders issues by urgency.
type IssuePriority string

const (
	PriorityNone   IssuePriority = "no_priority"
	PriorityUrgent IssuePriority = "urgent"
	PriorityHigh   IssuePriority = "high"
	PriorityMedium IssuePriority = "medium"
	PriorityLow    IssuePriority = "low"
)

type Issue struct { //nolint:govet // fieldalignment: readability over optimization
	ID             string         `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	Description    *string        `db:"description" json:"description,omitempty"`
	UserID         string         `db:"user_id" json:"user_id"`
	OrganizationID string         `db:"organization_id" json:"organization_id"`
	AssigneeID     *string        `db:"assignee_id" json:"assignee_id,omitempty"`
	Status         *IssueStatus   `db:"status" json:"status,omitempty"`
	Priority       *IssuePriority `db:"priority" json:"priority,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// ValidStatus reports whether s is one of the known workflow states.
func ValidStatus(s IssueStatus) bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusInReview,
		StatusDone, StatusCancelled, StatusDuplicate:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p IssuePriority) bool {
	switch p {
	case PriorityNone, PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
