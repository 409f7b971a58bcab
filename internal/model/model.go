package model

// Package model contains domain models/data structures shared by the core
// (content resolver and renderer) and the application layers around it.
// No business logic here.
