package instance

import "github.com/angelmondragon/partcustody/pkg/env"

// GetID identifies this process in logs. PARTCUSTODY_INSTANCE_ID wins over the
// platform-provided DYNO name.
func GetID() string {
	return env.Get("PARTCUSTODY_INSTANCE_ID", env.Get("DYNO", "local"))
}
