package models

// Access policy for the flat internal-tool permission model. Clients and
// projects are shared resources: any authenticated user may manage them,
// regardless of who created the record. Kept as named rules so the policy
// is explicit and testable rather than an absent check.
const (
	AnyUserMayManageClients  = true
	AnyUserMayManageProjects = true
)
