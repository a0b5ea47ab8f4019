// Package events defines the kafka topics and payloads exchanged between
// services, and a small JSON producer over kafka-go.
package events

const TopicNotifications = "notifications"

// NotificationRequest asks the notification service to deliver a message
// to a user. Field names follow the wire contract the consumers expect.
type NotificationRequest struct {
	ToUserID    uint   `json:"toUserId"`
	ToUserEmail string `json:"toUserEmail"`
	Message     string `json:"message"`
}
