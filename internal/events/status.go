package events

// statusNames maps return-status codes to their display names.
var statusNames = map[int]string{
	0: "Completed",
	1: "Pending",
	2: "Rejected",
}

// StatusName returns the display name for a return-status code,
// or "" for an unknown code.
func StatusName(code int) string {
	return statusNames[code]
}
