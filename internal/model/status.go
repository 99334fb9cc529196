package model

// Project status values derived from the latest deployment.
const (
	StatusReady    = "ready"
	StatusBuilding = "building"
	StatusError    = "error"
	StatusQueued   = "queued"
)

// Environment and cron job activity values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Canonical deployment targets. Upstream "development" is renamed to develop.
const (
	TargetProduction  = "production"
	TargetDevelopment = "develop"
	TargetStaging     = "staging"
)

// Trigger types of a deployment.
const (
	TriggerGit     = "git"
	TriggerManual  = "manual"
	TriggerWebhook = "webhook"
	TriggerAPI     = "api"
)
