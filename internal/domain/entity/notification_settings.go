package entity

// NotificationSettings canales habilitados para el envío de alertas.
type NotificationSettings struct {
	Browser bool `json:"browser"`
	Email   bool `json:"email"`
	Slack   bool `json:"slack"`
}

// DefaultNotificationSettings browser y email activos, Slack apagado.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Browser: true, Email: true, Slack: false}
}
