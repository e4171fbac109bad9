package instance

import "github.com/paoquentinho/storefront/pkg/env"

// GetID names this process in logs: PAOQUENTINHO_INSTANCE_ID, then the
// platform's DYNO, then "local".
func GetID() string {
	return env.First("local", "PAOQUENTINHO_INSTANCE_ID", "DYNO")
}
