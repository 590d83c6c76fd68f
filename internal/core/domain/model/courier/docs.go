// Package courier contains the Courier aggregate as the matching core sees it:
// identity, display name, last reported GPS position, and the active/available
// flags managed by the registration and profile collaborators.
//
// The matching pipeline treats couriers as read-only candidates. Position
// updates arrive through the location-update collaborator; everything else
// (registration, admin approval, availability toggling) lives outside this
// module and reaches the core only through the geo index and the repository.
package courier
