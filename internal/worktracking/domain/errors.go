package domain

import "errors"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrAreaNotFound     = errors.New("area not found")
	ErrWorkItemNotFound = errors.New("work item not found")
	ErrSubWorkNotFound  = errors.New("sub work not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidPayload   = errors.New("invalid payload")
)
