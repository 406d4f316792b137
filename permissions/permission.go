// Package permissions maps every route to the roles allowed to call it. The
// table is embedded at build time so a deploy cannot drift from the binary.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission describes one endpoint: the roles allowed to call it, or Skip
// for endpoints that take no bearer token (register, login, gateway callback).
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions looks up the entry for a route pattern and method. An
// unlisted route returns the zero Permission, which allows no role.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(endpoint Permission) bool {
		return endpoint.Path == path && endpoint.Method == method
	})
	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Get decodes the embedded table.
func Get() *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(permissionsData, &permissions); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
