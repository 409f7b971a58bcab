package repository

// Package repository contains data access layer abstractions for the draft
// history. Implementations live in subpackages (postgres, memory).
//
// All implementations report a missing row with sql.ErrNoRows so callers can
// translate it the same way regardless of backend.
