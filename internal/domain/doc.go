// Package domain contains the core model for the moderator registration flow.
//
// The domain is transport- and UI-agnostic: it does not depend on net/http, bubbletea,
// or the filesystem. Infra/adapters map into/from these types.
package domain
