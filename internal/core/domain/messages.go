package domain

import "fmt"

// Client-facing messages shared by services and storage adapters, so a
// constraint violation caught by the store reads the same as a pre-check.
const (
	MsgEmailTaken          = "User with this email already exists"
	MsgUsernameTaken       = "Username is already taken"
	MsgUserNotFound        = "User not found!"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgAdminOnly           = "Unauthorized"
	MsgMapElementExists    = "Element already exists in the specified map"
	MsgMapElementMissing   = "Element or Map not found"
	MsgSpaceElementExists  = "Element already exists in the specified space"
	MsgSpaceElementMissing = "Element or Space not found"
)

func SpaceNameTaken(name string) string {
	return fmt.Sprintf("A space with the name %q already exists", name)
}

func SpaceMapTaken(mapID string) string {
	return fmt.Sprintf("A space with the mapId %q already exists", mapID)
}
