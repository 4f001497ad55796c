package email

// PreviewData holds sample data for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateRSVPConfirmation: RSVPConfirmation{
		FirstName:    "Ada",
		MeetingTitle: "Monthly Meeting",
		MeetingWhen:  "Thursday, May 9 2024 at 6:00 PM",
		Where:        "Main Hall",
		Response:     "In Person",
		Status:       "Confirmed",
		ManageURL:    "https://example.org/rsvp/0f1e2d3c4b5a69788796a5b4c3d2e1f0",
	},
}
