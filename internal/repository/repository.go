package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// PageResult is a generic pagination result wrapper.
// Total reflects the filtered count before pagination is applied.
type PageResult[T any] struct {
	Items []T
	Total int
}
