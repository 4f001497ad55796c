package email

import "fmt"

const TemplateRSVPConfirmation Template = "rsvp_confirmation"

// RSVPConfirmation is the data rendered into the confirmation email.
type RSVPConfirmation struct {
	FirstName    string
	MeetingTitle string
	MeetingWhen  string
	Where        string
	Response     string
	Status       string
	ManageURL    string
}

// SendRSVPConfirmation tells an attendee their RSVP was recorded and
// gives them the link to change it.
func (c *Client) SendRSVPConfirmation(to string, data RSVPConfirmation) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("RSVP %s: %s", data.Status, data.MeetingTitle),
		TemplateRSVPConfirmation,
		data,
	)
}
