package model

import "errors"

var (
	ErrStashNotFound     = errors.New("stash not found")
	ErrStashInvalid      = errors.New("stash invalid")
	ErrStashIncompatible = errors.New("stash incompatible with workspace root entities")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrEntityInvalid     = errors.New("entity invalid")
)
