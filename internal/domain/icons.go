package domain

// Icon is an entry of the fixed icon catalog used by navigation entries.
type Icon struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var Icons = []Icon{
	{Value: "video", Label: "Video"},
	{Value: "wallet", Label: "Wallet"},
	{Value: "warning", Label: "Warning"},
	{Value: "notification", Label: "Notification"},
	{Value: "cable", Label: "Pipelines"},
	{Value: "calendar", Label: "Calendar"},
	{Value: "category", Label: "Category"},
	{Value: "chart", Label: "Bar Chart"},
	{Value: "check", Label: "Check"},
	{Value: "info", Label: "Info"},
	{Value: "clipboard", Label: "Clipboard"},
	{Value: "compass", Label: "Compass"},
	{Value: "chip", Label: "Chip"},
	{Value: "database", Label: "Database"},
	{Value: "email", Label: "Email"},
	{Value: "funnel", Label: "Funnel"},
	{Value: "flag", Label: "Flag"},
	{Value: "headphone", Label: "Headphone"},
	{Value: "home", Label: "Home"},
	{Value: "link", Label: "Link"},
	{Value: "lock", Label: "Lock"},
	{Value: "message", Label: "Message"},
	{Value: "paperclip", Label: "Paperclip"},
	{Value: "payment", Label: "Payment"},
	{Value: "person", Label: "Person"},
	{Value: "power", Label: "Power"},
	{Value: "receipt", Label: "Receipt"},
	{Value: "send", Label: "Send"},
	{Value: "settings", Label: "Settings"},
	{Value: "shield", Label: "Shield"},
	{Value: "star", Label: "Star"},
}

var iconSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Icons))
	for _, icon := range Icons {
		set[icon.Value] = struct{}{}
	}
	return set
}()

// IsIcon reports whether key belongs to the icon catalog.
func IsIcon(key string) bool {
	_, ok := iconSet[key]
	return ok
}
