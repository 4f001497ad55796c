package service

import (
	"context"
	"sort"
	"time"

	"github.com/deppfellow/membership/internal/lib/meetup"
	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/sqlerr"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type fakeMeetings struct {
	byID map[int64]*model.Meeting
}

func newFakeMeetings(meetings ...model.Meeting) *fakeMeetings {
	f := &fakeMeetings{byID: make(map[int64]*model.Meeting)}
	for i := range meetings {
		m := meetings[i]
		f.byID[m.ID] = &m
	}
	return f
}

func (f *fakeMeetings) GetByID(_ context.Context, id int64) (*model.Meeting, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, sqlerr.WrapTable("meetings", pgx.ErrNoRows)
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMeetings) GetByKey(_ context.Context, key string) (*model.Meeting, error) {
	for _, m := range f.byID {
		if m.Key == key {
			cp := *m
			return &cp, nil
		}
	}
	return nil, sqlerr.WrapTable("meetings", pgx.ErrNoRows)
}

func (f *fakeMeetings) sorted(keep func(model.Meeting) bool, desc bool) []model.Meeting {
	var out []model.Meeting
	for _, m := range f.byID {
		if keep(*m) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].When.After(out[j].When)
		}
		return out[i].When.Before(out[j].When)
	})
	return out
}

func page(items []model.Meeting, req model.PageRequest) []model.Meeting {
	start := req.GetOffset()
	if start > len(items) {
		return nil
	}
	end := start + req.GetPageSize()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (f *fakeMeetings) ListFuturePublished(_ context.Context, now time.Time, req model.PageRequest) ([]model.Meeting, int, error) {
	all := f.sorted(func(m model.Meeting) bool { return m.Published && !m.When.Before(now) }, false)
	return page(all, req), len(all), nil
}

func (f *fakeMeetings) ListPastPublished(_ context.Context, now time.Time, req model.PageRequest) ([]model.Meeting, int, error) {
	all := f.sorted(func(m model.Meeting) bool { return m.Published && m.When.Before(now) }, true)
	return page(all, req), len(all), nil
}

func (f *fakeMeetings) ListFutureMain(_ context.Context, now time.Time) ([]model.Meeting, error) {
	return f.sorted(func(m model.Meeting) bool { return m.Published && m.IsMain && !m.When.Before(now) }, false), nil
}

func (f *fakeMeetings) ListAll(_ context.Context) ([]model.Meeting, error) {
	return f.sorted(func(model.Meeting) bool { return true }, true), nil
}

type fakeRSVPs struct {
	rows   []*model.RSVP
	nextID int64
	saves  int
}

func (f *fakeRSVPs) GetByKey(_ context.Context, key string) (*model.RSVP, error) {
	for _, r := range f.rows {
		if r.Key == key {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sqlerr.WrapTable("rsvps", pgx.ErrNoRows)
}

func (f *fakeRSVPs) GetForUser(_ context.Context, meetingID, userID int64) (*model.RSVP, error) {
	for _, r := range f.rows {
		if r.MeetingID == meetingID && r.UserID != nil && *r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sqlerr.WrapTable("rsvps", pgx.ErrNoRows)
}

func (f *fakeRSVPs) Save(_ context.Context, rsvp *model.RSVP, resolve func(int) model.RSVPStatus) error {
	f.saves++
	others := 0
	for _, r := range f.rows {
		if r.MeetingID == rsvp.MeetingID && r.ID != rsvp.ID && r.IsConfirmedInPerson() {
			others++
		}
	}
	rsvp.Status = resolve(others)
	rsvp.Modified = testNow

	for i, r := range f.rows {
		if r.ID == rsvp.ID && rsvp.ID != 0 {
			cp := *rsvp
			f.rows[i] = &cp
			return nil
		}
	}

	f.nextID++
	rsvp.ID = f.nextID
	rsvp.Created = testNow
	cp := *rsvp
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeRSVPs) UpsertMeetup(_ context.Context, rsvp *model.RSVP) (bool, error) {
	for i, r := range f.rows {
		if r.MeetingID == rsvp.MeetingID && r.MeetupUserID != nil && *r.MeetupUserID == *rsvp.MeetupUserID {
			cp := *rsvp
			cp.ID = r.ID
			cp.Key = r.Key
			f.rows[i] = &cp
			return false, nil
		}
	}
	f.nextID++
	cp := *rsvp
	cp.ID = f.nextID
	f.rows = append(f.rows, &cp)
	return true, nil
}

func (f *fakeRSVPs) ListAttendees(_ context.Context, meetingID int64) ([]model.Attendee, error) {
	var out []model.Attendee
	for _, r := range f.rows {
		if r.MeetingID == meetingID && r.IsConfirmedInPerson() {
			out = append(out, model.Attendee{RSVP: *r})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (f *fakeRSVPs) CountByMeetings(_ context.Context, ids []int64) ([]model.RSVPCounts, error) {
	counts := map[int64]*model.RSVPCounts{}
	for _, r := range f.rows {
		for _, id := range ids {
			if r.MeetingID != id {
				continue
			}
			c, ok := counts[id]
			if !ok {
				c = &model.RSVPCounts{MeetingID: id}
				counts[id] = c
			}
			c.Total++
			if r.IsConfirmedInPerson() {
				c.ConfirmedInPerson++
			}
		}
	}
	var out []model.RSVPCounts
	for _, c := range counts {
		out = append(out, *c)
	}
	return out, nil
}

type fakeTopics struct {
	topics []model.Topic
}

func (f *fakeTopics) ListApproved(_ context.Context, meetingID int64) ([]model.Topic, error) {
	var out []model.Topic
	for _, t := range f.topics {
		if t.Approved && t.MeetingID != nil && *t.MeetingID == meetingID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTopics) Create(_ context.Context, t *model.Topic) (*model.Topic, error) {
	cp := *t
	cp.ID = int64(len(f.topics) + 1)
	f.topics = append(f.topics, cp)
	return &cp, nil
}

type fakeCaptcha struct {
	ok    bool
	calls int
}

func (f *fakeCaptcha) Verify(context.Context, string, string) (bool, error) {
	f.calls++
	return f.ok, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

type fakeMeetup struct {
	rsvps []meetup.RSVP
	err   error
}

func (f *fakeMeetup) ListYesRSVPs(context.Context, string) ([]meetup.RSVP, error) {
	return f.rsvps, f.err
}

type fakeProfiles struct {
	profiles map[int64]*model.UserProfile
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID int64) (*model.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, sqlerr.WrapTable("user_profiles", pgx.ErrNoRows)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) UpdateRole(ctx context.Context, userID int64, role model.Role) (*model.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, sqlerr.WrapTable("user_profiles", pgx.ErrNoRows)
	}
	p.Role = role
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) ListOrganizers(context.Context) ([]model.UserProfile, error) {
	var out []model.UserProfile
	for _, p := range f.profiles {
		if p.Show && p.IsOrganizer() {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeAnnouncements struct {
	items []model.Announcement
}

func (f *fakeAnnouncements) ListActive(context.Context, time.Time) ([]model.Announcement, error) {
	return f.items, nil
}

type fakeJobBoard struct{}

func (fakeJobBoard) ListApprovedJobs(context.Context) ([]model.JobPostListing, error) { return nil, nil }
func (fakeJobBoard) ListAffiliations(context.Context) ([]model.Affiliation, error)   { return nil, nil }

type fakeUsers struct {
	users    map[string]*model.User
	upserted int
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sqlerr.WrapTable("users", pgx.ErrNoRows)
}

func (f *fakeUsers) GetByExternalID(_ context.Context, externalID string) (*model.User, error) {
	if u, ok := f.users[externalID]; ok {
		return u, nil
	}
	return nil, sqlerr.WrapTable("users", pgx.ErrNoRows)
}

func (f *fakeUsers) Upsert(_ context.Context, u *model.User) (*model.User, error) {
	f.upserted++
	cp := *u
	cp.ID = int64(len(f.users) + 1)
	f.users[u.ExternalID] = &cp
	return &cp, nil
}

func meeting(id int64, when time.Time, opts ...func(*model.Meeting)) model.Meeting {
	m := model.Meeting{
		Base:      model.Base{ID: id},
		Key:       "key-" + when.Format("20060102"),
		Title:     "Meeting " + when.Format("Jan 2"),
		When:      when,
		Published: true,
		IsMain:    true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func days(n int) time.Time { return testNow.AddDate(0, 0, n) }
