package model

import "time"

// Announcement is a notice shown on the home page until it expires.
type Announcement struct {
	Base
	Headline string     `json:"headline" db:"headline"`
	Active   bool       `json:"active" db:"active"`
	Photo    *string    `json:"photo" db:"photo"`
	Link     *string    `json:"link" db:"link"`
	EndDate  *time.Time `json:"end_date" db:"end_date"`
	Text     *string    `json:"text" db:"text"`
}

// IsVisible reports whether the announcement should be shown at now.
func (a *Announcement) IsVisible(now time.Time) bool {
	if !a.Active {
		return false
	}
	return a.EndDate == nil || now.Before(*a.EndDate)
}

// Affiliation is a partner organization.
type Affiliation struct {
	Base
	Description string `json:"description" db:"description"`
	URL         string `json:"url" db:"url"`
}

// JobPostStatus tracks moderation of a job post.
type JobPostStatus string

const (
	JobPostPending  JobPostStatus = "pending"
	JobPostApproved JobPostStatus = "approved"
	JobPostRejected JobPostStatus = "rejected"
)

// JobPost is an entry on the job board.
type JobPost struct {
	Base
	Title         string        `json:"title" db:"title"`
	CompanyName   string        `json:"company_name" db:"company_name"`
	Location      string        `json:"location" db:"location"`
	Description   string        `json:"description" db:"description"`
	Status        JobPostStatus `json:"status" db:"status"`
	AffiliationID *int64        `json:"affiliation_id" db:"affiliation_id"`
}

// JobPostListing is a job post with its affiliation inlined.
type JobPostListing struct {
	JobPost
	AffiliationDescription *string `json:"affiliation_description" db:"affiliation_description"`
	AffiliationURL         *string `json:"affiliation_url" db:"affiliation_url"`
}
