package notification_service

// Notifier delivers member-facing billing notifications. Delivery is an
// external collaborator: it runs after state is persisted and its failures
// never roll back a transition.
type Notifier interface {
	SendMembershipActivated(to, memberName, vehicleLabel string) error
	SendMembershipCancelled(to, memberName, vehicleLabel string) error
}
