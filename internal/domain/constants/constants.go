// Package constants holds names shared between configuration and wiring.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// PubSub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderKafka  = "kafka"
)

// Scheduled task names
const (
	TaskFulfillment = "fulfillment"
	TaskRentedSweep = "rented-sweep"
	TaskListedSweep = "listed-sweep"
)
